package e2e

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PaperExtensions are the document types WritePaper can produce.
var PaperExtensions = []string{".txt", ".tex", ".docx", ".xlsx"}

// WritePaper returns a minimal document of type ext whose abstract is abstract.
// Every format surrounds the abstract with a title and an introduction so that
// only abstract detection can recover it exactly.
func WritePaper(ext, title, abstract string) ([]byte, error) {
	const intro = "Recent work on this problem has focused on scale."
	switch ext {
	case ".txt":
		return []byte(fmt.Sprintf("%s\n\nAbstract\n%s\n\n1 Introduction\n%s\n", title, abstract, intro)), nil
	case ".tex":
		return []byte(fmt.Sprintf("\\title{%s}\n\\begin{document}\n\\begin{abstract}\n%s\n\\end{abstract}\n\\section{Introduction}\n%s\n\\end{document}\n", title, abstract, intro)), nil
	case ".docx":
		return minimalDocx(title, "Abstract", abstract, "1 Introduction", intro), nil
	case ".xlsx":
		return minimalXlsx(title, abstract)
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}
}

func minimalDocx(paragraphs ...string) []byte {
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("word/document.xml")
	_, _ = fw.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func minimalXlsx(title, abstract string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow("Sheet1", "A1", &[]string{"title", "abstract"}); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow("Sheet1", "A2", &[]string{title, abstract}); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
