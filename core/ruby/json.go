package ruby

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/FocuswithJustin/rubykit/core/errors"
)

// jsonUnmarshal is a variable to allow testing of unmarshal errors.
var jsonUnmarshal = json.Unmarshal

// MarshalJSON encodes content as a single-key object whose key is the
// variant: {"default":"..."} or {"custom":{"before":"...",...}}. Custom
// content with no position is rejected since it could not be read back.
func (c Content) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case ContentDefault:
		return json.Marshal(map[string]string{"default": c.text})
	case ContentCustom:
		if len(c.texts) == 0 {
			return nil, &errors.ValidationError{Field: "text.custom", Message: "custom content names no position", Err: errors.ErrInvalidInput}
		}
		return json.Marshal(map[string]map[Position]string{"custom": c.texts})
	default:
		return nil, fmt.Errorf("unknown ruby content kind %d", c.kind)
	}
}

// UnmarshalJSON decodes the form written by MarshalJSON. A custom mapping
// must name at least one position.
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := jsonUnmarshal(data, &raw); err != nil {
		return &errors.ParseError{Format: "json", Path: "text", Message: "content must be an object", Err: err}
	}
	if len(raw) != 1 {
		return errors.NewParse("json", "text", fmt.Sprintf("content must have exactly one variant key, got %d", len(raw)))
	}

	if payload, ok := raw["default"]; ok {
		var text string
		if err := jsonUnmarshal(payload, &text); err != nil {
			return &errors.ParseError{Format: "json", Path: "text.default", Message: "expected string", Err: err}
		}
		*c = DefaultContent(text)
		return nil
	}

	if payload, ok := raw["custom"]; ok {
		var texts map[Position]string
		if err := jsonUnmarshal(payload, &texts); err != nil {
			return &errors.ParseError{Format: "json", Path: "text.custom", Message: "expected position to string object", Err: err}
		}
		if len(texts) == 0 {
			return errors.NewParse("json", "text.custom", "custom content names no position")
		}
		*c = CustomContent(texts)
		return nil
	}

	for key := range raw {
		return errors.NewParse("json", "text", fmt.Sprintf("unknown content variant %q", key))
	}
	return nil
}

// valueJSON is the wire shape of Value.
type valueJSON struct {
	Text       *Content   `json:"text"`
	SizeFactor *float64   `json:"sizeFactor,omitempty"`
	Alignment  *Alignment `json:"alignment,omitempty"`
	Overhang   *Overhang  `json:"overhang,omitempty"`
}

// MarshalJSON encodes v field by field; absent optionals are omitted.
func (v Value) MarshalJSON() ([]byte, error) {
	content := v.content
	return json.Marshal(valueJSON{
		Text:       &content,
		SizeFactor: v.sizeFactor,
		Alignment:  v.alignment,
		Overhang:   v.overhang,
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON. The text field is
// required.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.NewParse("json", "", "ruby value must be an object")
	}
	var w valueJSON
	if err := jsonUnmarshal(data, &w); err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			return pe
		}
		return &errors.ParseError{Format: "json", Message: "malformed ruby value", Err: err}
	}
	if w.Text == nil {
		return errors.NewParse("json", "text", "missing required field")
	}
	*v = Value{
		content:    *w.Text,
		sizeFactor: w.SizeFactor,
		alignment:  w.Alignment,
		overhang:   w.Overhang,
	}
	return nil
}
