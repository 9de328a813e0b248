package attrtext

import (
	"fmt"
	"unicode/utf16"

	"github.com/FocuswithJustin/rubykit/core/ctruby"
	"github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/ruby"
	"github.com/FocuswithJustin/rubykit/internal/logging"
)

// Range is a span of text measured in UTF-16 code units, the unit native
// text layout uses.
type Range struct {
	Location int
	Length   int
}

// NativeRun is one run in the native attribute layout. Attributes maps
// Key.Native names to values: *ctruby.Annotation for RubyKey and bool for
// VerticalGlyphKey.
type NativeRun struct {
	Range      Range
	Attributes map[string]any
}

// ExportNative converts s into native runs. Every ruby annotation in the
// result is owned by the caller; release them with ReleaseNative.
func (s *String) ExportNative() []NativeRun {
	out := make([]NativeRun, 0, len(s.runs))
	loc := 0
	for _, r := range s.Runs() {
		length := utf16Len(r.Text)
		attrs := make(map[string]any, 2)
		if v, ok := r.Attributes.Ruby(); ok {
			attrs[RubyKey.Native] = ruby.EncodeNative(v)
		}
		if b, ok := r.Attributes.VerticalGlyph(); ok {
			attrs[VerticalGlyphKey.Native] = b
		}
		out = append(out, NativeRun{Range: Range{Location: loc, Length: length}, Attributes: attrs})
		loc += length
	}
	logging.Conversion("attributed", "native", len(out))
	return out
}

// ImportNative builds a String from text and native runs. Ranges may leave
// gaps, which stay unattributed. The annotations in runs are read, not
// released.
func ImportNative(text string, runs []NativeRun) (*String, error) {
	offsets := utf16Offsets(text)
	s := New(text)
	for i, nr := range runs {
		start, end := nr.Range.Location, nr.Range.Location+nr.Range.Length
		if nr.Range.Length < 0 || start < 0 || end >= len(offsets) || offsets[start] < 0 || offsets[end] < 0 {
			return nil, errors.NewValidation(fmt.Sprintf("runs[%d].range", i),
				fmt.Sprintf("{%d, %d} does not fit the text", nr.Range.Location, nr.Range.Length))
		}
		bstart, bend := offsets[start], offsets[end]

		for name, raw := range nr.Attributes {
			switch name {
			case RubyKey.Native:
				a, ok := raw.(*ctruby.Annotation)
				if !ok || a == nil {
					return nil, errors.NewValidation(fmt.Sprintf("runs[%d].%s", i, name),
						fmt.Sprintf("expected *ctruby.Annotation, got %T", raw))
				}
				v := ruby.DecodeNative(a)
				if err := s.SetRuby(bstart, bend, &v); err != nil {
					return nil, err
				}
			case VerticalGlyphKey.Native:
				b, ok := raw.(bool)
				if !ok {
					return nil, errors.NewValidation(fmt.Sprintf("runs[%d].%s", i, name),
						fmt.Sprintf("expected bool, got %T", raw))
				}
				if err := s.SetVerticalGlyph(bstart, bend, &b); err != nil {
					return nil, err
				}
			default:
				logging.IgnoredAttribute(name, text[bstart:bend])
			}
		}
	}
	logging.Conversion("native", "attributed", len(s.runs))
	return s, nil
}

// ReleaseNative releases every ruby annotation held by runs.
func ReleaseNative(runs []NativeRun) {
	for _, nr := range runs {
		if a, ok := nr.Attributes[RubyKey.Native].(*ctruby.Annotation); ok && a != nil {
			a.Release()
		}
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// utf16Offsets maps each UTF-16 offset in s to its byte offset, or -1 when
// the offset falls inside a surrogate pair. The final entry maps len(s).
func utf16Offsets(s string) []int {
	out := make([]int, 0, len(s)+1)
	for i, r := range s {
		out = append(out, i)
		if utf16.RuneLen(r) == 2 {
			out = append(out, -1)
		}
	}
	return append(out, len(s))
}
