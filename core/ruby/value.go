package ruby

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSizeFactor is the size factor used when a value does not set one.
const DefaultSizeFactor = 0.5

// ContentKind discriminates the two Content variants.
type ContentKind uint8

// Content kinds.
const (
	// ContentDefault carries a single gloss placed at the Before position.
	ContentDefault ContentKind = iota
	// ContentCustom carries explicit per-position text.
	ContentCustom
)

func (k ContentKind) String() string {
	switch k {
	case ContentDefault:
		return "default"
	case ContentCustom:
		return "custom"
	default:
		return fmt.Sprintf("ContentKind(%d)", uint8(k))
	}
}

// Content is the gloss text of a ruby annotation: either a single default
// text or an explicit mapping from position to text.
//
// A custom content is expected to hold at least one entry. The constructor
// does not enforce this; EncodeNative does, since that is where an empty
// mapping cannot be represented.
type Content struct {
	kind  ContentKind
	text  string
	texts map[Position]string
}

// DefaultContent returns content placing text at the conventional position.
func DefaultContent(text string) Content {
	return Content{kind: ContentDefault, text: text}
}

// CustomContent returns content with explicit per-position text. The map is
// copied.
func CustomContent(texts map[Position]string) Content {
	c := Content{kind: ContentCustom, texts: make(map[Position]string, len(texts))}
	for p, s := range texts {
		c.texts[p] = s
	}
	return c
}

// Kind reports which variant c holds.
func (c Content) Kind() ContentKind {
	return c.kind
}

// Text returns the default text. ok is false for custom content.
func (c Content) Text() (text string, ok bool) {
	return c.text, c.kind == ContentDefault
}

// Texts returns a copy of the per-position text. ok is false for default
// content.
func (c Content) Texts() (texts map[Position]string, ok bool) {
	if c.kind != ContentCustom {
		return nil, false
	}
	texts = make(map[Position]string, len(c.texts))
	for p, s := range c.texts {
		texts[p] = s
	}
	return texts, true
}

// Len returns the number of populated positions.
func (c Content) Len() int {
	if c.kind == ContentDefault {
		return 1
	}
	return len(c.texts)
}

// Equal reports whether both contents hold the same variant and payload.
func (c Content) Equal(o Content) bool {
	if c.kind != o.kind {
		return false
	}
	if c.kind == ContentDefault {
		return c.text == o.text
	}
	if len(c.texts) != len(o.texts) {
		return false
	}
	for p, s := range c.texts {
		if ot, ok := o.texts[p]; !ok || ot != s {
			return false
		}
	}
	return true
}

func (c Content) String() string {
	if c.kind == ContentDefault {
		return fmt.Sprintf("default(%q)", c.text)
	}
	var parts []string
	for _, p := range Positions() {
		if s, ok := c.texts[p]; ok {
			parts = append(parts, fmt.Sprintf("%s: %q", p, s))
		}
	}
	return "custom[" + strings.Join(parts, ", ") + "]"
}

// Value is a ruby annotation attachable to a range of text. Fields are
// unexported; a Value does not change after construction.
type Value struct {
	content    Content
	sizeFactor *float64
	alignment  *Alignment
	overhang   *Overhang
}

// Option sets an optional field of a Value.
type Option func(*Value)

// WithSizeFactor sets the ruby size as a fraction of the base font size.
func WithSizeFactor(f float64) Option {
	return func(v *Value) { v.sizeFactor = &f }
}

// WithAlignment sets the alignment.
func WithAlignment(a Alignment) Option {
	return func(v *Value) { v.alignment = &a }
}

// WithOverhang sets the overhang.
func WithOverhang(o Overhang) Option {
	return func(v *Value) { v.overhang = &o }
}

// New returns a value with default content text.
func New(text string, opts ...Option) Value {
	return NewWithContent(DefaultContent(text), opts...)
}

// NewWithContent returns a value with the given content.
func NewWithContent(content Content, opts ...Option) Value {
	v := Value{content: content}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// Content returns the gloss content.
func (v Value) Content() Content {
	return v.content
}

// SizeFactor returns the size factor, if set.
func (v Value) SizeFactor() (float64, bool) {
	if v.sizeFactor == nil {
		return 0, false
	}
	return *v.sizeFactor, true
}

// Alignment returns the alignment, if set.
func (v Value) Alignment() (Alignment, bool) {
	if v.alignment == nil {
		return 0, false
	}
	return *v.alignment, true
}

// Overhang returns the overhang, if set.
func (v Value) Overhang() (Overhang, bool) {
	if v.overhang == nil {
		return 0, false
	}
	return *v.overhang, true
}

// Equal compares all four fields.
func (v Value) Equal(o Value) bool {
	return v.content.Equal(o.content) &&
		equalPtr(v.sizeFactor, o.sizeFactor) &&
		equalPtr(v.alignment, o.alignment) &&
		equalPtr(v.overhang, o.overhang)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Key returns a canonical string for v: equal values have equal keys. It
// lets values index maps.
func (v Value) Key() string {
	var sb strings.Builder
	sb.WriteString(v.content.kind.String())
	if v.content.kind == ContentDefault {
		sb.WriteString(":" + strconv.Quote(v.content.text))
	} else {
		for _, p := range Positions() {
			if s, ok := v.content.texts[p]; ok {
				sb.WriteString(fmt.Sprintf(":%d=%s", uint8(p), strconv.Quote(s)))
			}
		}
	}
	sb.WriteString("|")
	if v.sizeFactor != nil {
		f := *v.sizeFactor
		if f == 0 {
			f = 0 // -0
		}
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	sb.WriteString("|")
	if v.alignment != nil {
		sb.WriteString(strconv.Itoa(int(*v.alignment)))
	}
	sb.WriteString("|")
	if v.overhang != nil {
		sb.WriteString(strconv.Itoa(int(*v.overhang)))
	}
	return sb.String()
}

func (v Value) String() string {
	var sb strings.Builder
	sb.WriteString("ruby{" + v.content.String())
	if f, ok := v.SizeFactor(); ok {
		sb.WriteString(" sizeFactor=" + strconv.FormatFloat(f, 'g', -1, 64))
	}
	if a, ok := v.Alignment(); ok {
		sb.WriteString(" alignment=" + a.String())
	}
	if o, ok := v.Overhang(); ok {
		sb.WriteString(" overhang=" + o.String())
	}
	sb.WriteString("}")
	return sb.String()
}
