package attrtext

import (
	"fmt"

	"github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/markup"
	"github.com/FocuswithJustin/rubykit/core/ruby"
	"github.com/FocuswithJustin/rubykit/internal/logging"
)

// Key names one attribute in each representation it appears in.
type Key struct {
	// Native is the attribute name used in native runs and JSON.
	Native string
	// Markup is the key used inside inline markup attribute lists.
	Markup string
}

var (
	// RubyKey carries a ruby.Value.
	RubyKey = Key{Native: "CTRubyAnnotation", Markup: ruby.MarkupName}
	// VerticalGlyphKey carries a boolean vertical-glyph flag.
	VerticalGlyphKey = Key{Native: "NSVerticalGlyphForm", Markup: "verticalGlyph"}
)

// Keys returns every registered attribute key.
func Keys() []Key {
	return []Key{RubyKey, VerticalGlyphKey}
}

// FromMarkup parses inline markup into a String. Attributes whose key is not
// registered are ignored. An inline span with no base text may not carry a
// registered attribute, since there would be nothing to attach it to.
func FromMarkup(src string) (*String, error) {
	doc, err := markup.Parse(src)
	if err != nil {
		return nil, err
	}

	out := &String{}
	for _, seg := range doc.Segments {
		attrs, err := decodeAttributes(seg)
		if err != nil {
			return nil, err
		}
		if seg.Inline && seg.Text == "" && !attrs.IsZero() {
			return nil, errors.NewParse("markup", "inline", "attributes on empty base text")
		}
		out.AppendWithAttributes(seg.Text, attrs)
	}
	logging.Conversion("markup", "attributed", len(out.runs))
	return out, nil
}

func decodeAttributes(seg markup.Segment) (Attributes, error) {
	var attrs Attributes
	for _, attr := range seg.Attributes {
		switch attr.Key {
		case RubyKey.Markup:
			v, err := ruby.DecodeMarkup(attr.Value)
			if err != nil {
				return Attributes{}, err
			}
			attrs = attrs.WithRuby(&v)
		case VerticalGlyphKey.Markup:
			b, ok := attr.Value.AsBool()
			if !ok {
				return Attributes{}, errors.NewParse("markup", VerticalGlyphKey.Markup,
					fmt.Sprintf("expected bool payload, got %s", attr.Value.Kind()))
			}
			attrs = attrs.WithVerticalGlyph(&b)
		default:
			logging.IgnoredAttribute(attr.Key, seg.Text)
		}
	}
	return attrs, nil
}

// ToMarkup writes s as inline markup that FromMarkup reads back as s. Runs
// with ruby that the notation cannot express return an
// *errors.UnsupportedError.
func ToMarkup(s *String) (string, error) {
	segments := make([]markup.Segment, 0, len(s.runs))
	for _, r := range s.Runs() {
		seg := markup.Segment{Text: r.Text}
		if v, ok := r.Attributes.Ruby(); ok {
			payload, err := ruby.EncodeMarkup(v)
			if err != nil {
				return "", err
			}
			seg.Attributes = append(seg.Attributes, markup.Attribute{Key: RubyKey.Markup, Value: payload})
		}
		if b, ok := r.Attributes.VerticalGlyph(); ok {
			seg.Attributes = append(seg.Attributes, markup.Attribute{Key: VerticalGlyphKey.Markup, Value: markup.Bool(b)})
		}
		seg.Inline = len(seg.Attributes) > 0
		segments = append(segments, seg)
	}
	return markup.Format(segments), nil
}
