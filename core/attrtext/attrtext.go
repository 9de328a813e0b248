// Package attrtext stores text together with per-range ruby and
// vertical-glyph attributes.
//
// A String is a sequence of runs. Each run covers a byte range of the
// character data and carries one Attributes value. Adjacent runs with equal
// attributes are always merged, so two Strings with the same characters and
// the same attribute coverage have identical runs.
package attrtext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/ruby"
)

// Attributes is the set of attributes attached to one run. Both attributes
// are independently optional.
type Attributes struct {
	ruby          *ruby.Value
	verticalGlyph *bool
}

// Ruby returns the run's ruby annotation, if any.
func (a Attributes) Ruby() (ruby.Value, bool) {
	if a.ruby == nil {
		return ruby.Value{}, false
	}
	return *a.ruby, true
}

// VerticalGlyph returns the run's vertical-glyph flag, if set.
func (a Attributes) VerticalGlyph() (bool, bool) {
	if a.verticalGlyph == nil {
		return false, false
	}
	return *a.verticalGlyph, true
}

// WithRuby returns a copy of a with the ruby annotation replaced. A nil v
// removes it.
func (a Attributes) WithRuby(v *ruby.Value) Attributes {
	if v != nil {
		c := *v
		v = &c
	}
	a.ruby = v
	return a
}

// WithVerticalGlyph returns a copy of a with the vertical-glyph flag
// replaced. A nil b removes it.
func (a Attributes) WithVerticalGlyph(b *bool) Attributes {
	if b != nil {
		c := *b
		b = &c
	}
	a.verticalGlyph = b
	return a
}

// IsZero reports whether no attribute is set.
func (a Attributes) IsZero() bool {
	return a.ruby == nil && a.verticalGlyph == nil
}

// Equal reports whether a and b carry the same attributes.
func (a Attributes) Equal(b Attributes) bool {
	if (a.ruby == nil) != (b.ruby == nil) {
		return false
	}
	if a.ruby != nil && !a.ruby.Equal(*b.ruby) {
		return false
	}
	if (a.verticalGlyph == nil) != (b.verticalGlyph == nil) {
		return false
	}
	return a.verticalGlyph == nil || *a.verticalGlyph == *b.verticalGlyph
}

func (a Attributes) String() string {
	var parts []string
	if a.ruby != nil {
		parts = append(parts, "ruby="+a.ruby.String())
	}
	if a.verticalGlyph != nil {
		parts = append(parts, fmt.Sprintf("verticalGlyph=%t", *a.verticalGlyph))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Run is one maximal range of text sharing the same attributes. Start and
// End are byte offsets into the String's characters.
type Run struct {
	Text       string
	Start, End int
	Attributes Attributes
}

type run struct {
	length int
	attrs  Attributes
}

// String is text with attribute runs. The zero value is an empty string.
type String struct {
	text string
	runs []run
}

// New returns text without attributes.
func New(text string) *String {
	return NewWithAttributes(text, Attributes{})
}

// NewWithAttributes returns text with attrs applied to all of it.
func NewWithAttributes(text string, attrs Attributes) *String {
	s := &String{text: text}
	if text != "" {
		s.runs = []run{{length: len(text), attrs: attrs}}
	}
	return s
}

// Characters returns the character data without attributes.
func (s *String) Characters() string {
	return s.text
}

// Len returns the length of the character data in bytes.
func (s *String) Len() int {
	return len(s.text)
}

// Runs returns the attribute runs in order.
func (s *String) Runs() []Run {
	out := make([]Run, 0, len(s.runs))
	pos := 0
	for _, r := range s.runs {
		out = append(out, Run{
			Text:       s.text[pos : pos+r.length],
			Start:      pos,
			End:        pos + r.length,
			Attributes: r.attrs,
		})
		pos += r.length
	}
	return out
}

// Append adds other to the end of s.
func (s *String) Append(other *String) {
	if other == nil {
		return
	}
	s.text += other.text
	s.runs = append(s.runs, other.runs...)
	s.coalesce()
}

// AppendText adds plain text without attributes to the end of s.
func (s *String) AppendText(text string) {
	s.Append(New(text))
}

// AppendWithAttributes adds text carrying attrs to the end of s.
func (s *String) AppendWithAttributes(text string, attrs Attributes) {
	s.Append(NewWithAttributes(text, attrs))
}

// SetRuby attaches v to the byte range [start, end). A nil v removes any
// ruby annotation from the range.
func (s *String) SetRuby(start, end int, v *ruby.Value) error {
	return s.update(start, end, func(a Attributes) Attributes { return a.WithRuby(v) })
}

// SetVerticalGlyph sets the vertical-glyph flag on the byte range
// [start, end). A nil b removes the flag from the range.
func (s *String) SetVerticalGlyph(start, end int, b *bool) error {
	return s.update(start, end, func(a Attributes) Attributes { return a.WithVerticalGlyph(b) })
}

// SetVerticalGlyphAll sets the vertical-glyph flag on the whole string.
func (s *String) SetVerticalGlyphAll(b bool) {
	// The full range is always valid.
	_ = s.SetVerticalGlyph(0, len(s.text), &b)
}

// Slice returns a copy of the byte range [start, end) with its attributes.
func (s *String) Slice(start, end int) (*String, error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}
	out := &String{text: s.text[start:end]}
	for _, r := range s.Runs() {
		lo, hi := max(r.Start, start), min(r.End, end)
		if lo < hi {
			out.runs = append(out.runs, run{length: hi - lo, attrs: r.Attributes})
		}
	}
	return out, nil
}

// Equal reports whether s and o have the same characters and runs.
func (s *String) Equal(o *String) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.text != o.text || len(s.runs) != len(o.runs) {
		return false
	}
	for i := range s.runs {
		if s.runs[i].length != o.runs[i].length || !s.runs[i].attrs.Equal(o.runs[i].attrs) {
			return false
		}
	}
	return true
}

func (s *String) String() string {
	var b strings.Builder
	for i, r := range s.Runs() {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%q%s", r.Text, r.Attributes)
	}
	return b.String()
}

func (s *String) checkRange(start, end int) error {
	if start < 0 || end > len(s.text) || start > end {
		return errors.NewValidation("range", fmt.Sprintf("[%d, %d) outside text of length %d", start, end, len(s.text)))
	}
	if !boundary(s.text, start) || !boundary(s.text, end) {
		return errors.NewValidation("range", fmt.Sprintf("[%d, %d) splits a UTF-8 sequence", start, end))
	}
	return nil
}

func boundary(text string, i int) bool {
	return i == len(text) || utf8.RuneStart(text[i])
}

func (s *String) update(start, end int, f func(Attributes) Attributes) error {
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	if start == end {
		return nil
	}
	s.splitAt(start)
	s.splitAt(end)

	pos := 0
	for i := range s.runs {
		if pos >= start && pos < end {
			s.runs[i].attrs = f(s.runs[i].attrs)
		}
		pos += s.runs[i].length
	}
	s.coalesce()
	return nil
}

// splitAt makes at a run boundary.
func (s *String) splitAt(at int) {
	pos := 0
	for i, r := range s.runs {
		if at > pos && at < pos+r.length {
			head := run{length: at - pos, attrs: r.attrs}
			tail := run{length: pos + r.length - at, attrs: r.attrs}
			s.runs = append(s.runs[:i], append([]run{head, tail}, s.runs[i+1:]...)...)
			return
		}
		pos += r.length
	}
}

func (s *String) coalesce() {
	out := s.runs[:0]
	for _, r := range s.runs {
		if r.length == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].attrs.Equal(r.attrs) {
			out[n-1].length += r.length
			continue
		}
		out = append(out, r)
	}
	s.runs = out
}
