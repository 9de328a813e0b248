package attrtext

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/ruby"
)

type attributesJSON struct {
	Ruby          *ruby.Value `json:"CTRubyAnnotation,omitempty"`
	VerticalGlyph *bool       `json:"NSVerticalGlyphForm,omitempty"`
}

type runJSON struct {
	Text       string         `json:"text"`
	Attributes attributesJSON `json:"attributes"`
}

type stringJSON struct {
	Runs []runJSON `json:"runs"`
}

// MarshalJSON writes s as {"runs":[{"text":...,"attributes":{...}}]}.
func (s *String) MarshalJSON() ([]byte, error) {
	doc := stringJSON{Runs: make([]runJSON, 0, len(s.runs))}
	for _, r := range s.Runs() {
		doc.Runs = append(doc.Runs, runJSON{
			Text: r.Text,
			Attributes: attributesJSON{
				Ruby:          r.Attributes.ruby,
				VerticalGlyph: r.Attributes.verticalGlyph,
			},
		})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads the form written by MarshalJSON. Runs are merged again
// when neighbours carry equal attributes.
func (s *String) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.NewParse("json", "", "attributed string is null")
	}
	var doc stringJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			return err
		}
		return &errors.ParseError{Format: "json", Message: err.Error(), Err: err}
	}

	out := String{}
	for i, r := range doc.Runs {
		if r.Text == "" {
			return errors.NewParse("json", fmt.Sprintf("runs[%d].text", i), "empty run")
		}
		attrs := Attributes{}.WithRuby(r.Attributes.Ruby).WithVerticalGlyph(r.Attributes.VerticalGlyph)
		out.AppendWithAttributes(r.Text, attrs)
	}
	*s = out
	return nil
}
