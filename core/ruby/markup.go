package ruby

import (
	"fmt"

	"github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/markup"
)

// MarkupName is the attribute key that carries ruby text in inline markup.
const MarkupName = "ruby"

// DecodeMarkup turns the payload of a `ruby:` inline attribute into a Value
// with default content. The payload must be a string; any string is a legal
// gloss. Optional fields are left absent.
func DecodeMarkup(payload markup.Value) (Value, error) {
	text, ok := payload.AsString()
	if !ok {
		return Value{}, errors.NewParse("markup", MarkupName,
			fmt.Sprintf("expected string payload, got %s", payload.Kind()))
	}
	return New(text), nil
}

// EncodeMarkup returns the payload that DecodeMarkup reads back as v. Only
// default content without optional fields can be written in the notation.
func EncodeMarkup(v Value) (markup.Value, error) {
	text, ok := v.content.Text()
	if !ok || v.sizeFactor != nil || v.alignment != nil || v.overhang != nil {
		return markup.Value{}, errors.NewUnsupported("ruby markup", "only plain default content can be written inline")
	}
	return markup.String(text), nil
}
