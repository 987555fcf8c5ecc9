package extract

import (
	"regexp"
	"strings"
)

var (
	latexAbstract = regexp.MustCompile(`(?s)\\begin\{abstract\}(.*?)\\end\{abstract\}`)
	latexCommand  = regexp.MustCompile(`\\[a-zA-Z]+\*?(\[[^\]]*\])?`)
	abstractHead  = regexp.MustCompile(`(?i)\babstract\b[\s:.\-–—]*`)
	sectionAfter  = regexp.MustCompile(`(?im)^\s*(?:(?:\d+|[IVX]+)\.?\s*)?(?:introduction|keywords|index terms)\b`)
)

// Abstract returns the abstract section of a paper's text, whitespace
// collapsed and cut to maxRunes (no limit when maxRunes <= 0).
//
// A LaTeX abstract environment wins. Otherwise the text after an "Abstract"
// heading up to the introduction or keywords is used. Without a heading the
// whole text is returned.
func Abstract(text string, maxRunes int) string {
	body := text
	if m := latexAbstract.FindStringSubmatch(text); m != nil {
		body = latexCommand.ReplaceAllString(m[1], "")
		body = strings.NewReplacer("{", "", "}", "", "~", " ").Replace(body)
	} else if loc := abstractHead.FindStringIndex(text); loc != nil {
		body = text[loc[1]:]
		if end := sectionAfter.FindStringIndex(body); end != nil {
			body = body[:end[0]]
		}
	}
	body = strings.Join(strings.Fields(body), " ")
	if maxRunes > 0 {
		if r := []rune(body); len(r) > maxRunes {
			body = string(r[:maxRunes])
		}
	}
	return body
}
