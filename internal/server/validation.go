package server

import (
	"fmt"
	"unicode/utf8"
)

// fieldError is one entry of a 422 detail list.
type fieldError struct {
	Type  string         `json:"type"`
	Loc   []string       `json:"loc"`
	Msg   string         `json:"msg"`
	Input any            `json:"input,omitempty"`
	Ctx   map[string]int `json:"ctx,omitempty"`
}

func requireString(field string, v *string, minLen int) []fieldError {
	if v == nil {
		return []fieldError{{Type: "missing", Loc: []string{"body", field}, Msg: "Field required"}}
	}
	if utf8.RuneCountInString(*v) < minLen {
		return []fieldError{{
			Type:  "string_too_short",
			Loc:   []string{"body", field},
			Msg:   fmt.Sprintf("String should have at least %d characters", minLen),
			Input: *v,
			Ctx:   map[string]int{"min_length": minLen},
		}}
	}
	return nil
}

// intInRange validates an optional integer. A nil value takes def.
func intInRange(field string, v *int, lo, hi, def int) (int, []fieldError) {
	if v == nil {
		return def, nil
	}
	switch {
	case *v < lo:
		return 0, []fieldError{{
			Type:  "greater_than_equal",
			Loc:   []string{"body", field},
			Msg:   fmt.Sprintf("Input should be greater than or equal to %d", lo),
			Input: *v,
			Ctx:   map[string]int{"ge": lo},
		}}
	case *v > hi:
		return 0, []fieldError{{
			Type:  "less_than_equal",
			Loc:   []string{"body", field},
			Msg:   fmt.Sprintf("Input should be less than or equal to %d", hi),
			Input: *v,
			Ctx:   map[string]int{"le": hi},
		}}
	}
	return *v, nil
}
