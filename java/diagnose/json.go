package diagnose

import (
	"encoding/json"

	"github.com/dhamidi/stray/java/parser"
)

type jsonDiagnostic struct {
	Code     Code         `json:"code"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Start    jsonPosition `json:"start"`
	End      jsonPosition `json:"end"`
	Member   *jsonMember  `json:"member,omitempty"`
	Fixes    []jsonFix    `json:"fixes,omitempty"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonMember struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type jsonFix struct {
	Title string     `json:"title"`
	Edits []jsonEdit `json:"edits"`
}

type jsonEdit struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	NewText string `json:"newText"`
}

func toJSONPosition(p parser.Position) jsonPosition {
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func (d Diagnostic) MarshalJSON() ([]byte, error) {
	jd := jsonDiagnostic{
		Code:     d.Code,
		Severity: d.Severity.String(),
		Message:  d.Message,
		Start:    toJSONPosition(d.Start),
		End:      toJSONPosition(d.End),
	}
	if d.Member != nil {
		jd.Member = &jsonMember{
			Kind:  d.Member.Kind.String(),
			Start: d.Member.Range.Start,
			End:   d.Member.Range.End,
		}
	}
	for _, fix := range d.Fixes {
		jf := jsonFix{Title: fix.Title, Edits: []jsonEdit{}}
		for _, e := range fix.Edits {
			jf.Edits = append(jf.Edits, jsonEdit{Start: e.Start, End: e.End, NewText: e.NewText})
		}
		jd.Fixes = append(jd.Fixes, jf)
	}
	return json.Marshal(jd)
}
