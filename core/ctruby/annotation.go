// Package ctruby models the native ruby annotation object consumed by the
// text layout layer: four positional text slots (before, after,
// inter-character, inline) plus one alignment, one overhang and one size
// factor field. The raw numbering of slots and enumerations is fixed by the
// layout layer and must not change.
package ctruby

import "github.com/FocuswithJustin/rubykit/core/errors"

// Slot indices.
const (
	PositionBefore         uint8 = 0
	PositionAfter          uint8 = 1
	PositionInterCharacter uint8 = 2
	PositionInline         uint8 = 3

	// PositionCount is the number of slots an annotation carries.
	PositionCount = 4
)

// Raw alignment values understood by the layout layer.
const (
	AlignmentAuto             uint8 = 0
	AlignmentStart            uint8 = 1
	AlignmentCenter           uint8 = 2
	AlignmentEnd              uint8 = 3
	AlignmentDistributeLetter uint8 = 4
	AlignmentDistributeSpace  uint8 = 5
	AlignmentLineEdge         uint8 = 6

	// AlignmentInvalid is reported for an annotation built from garbage.
	AlignmentInvalid uint8 = 255
)

// Raw overhang values understood by the layout layer.
const (
	OverhangAuto  uint8 = 0
	OverhangStart uint8 = 1
	OverhangEnd   uint8 = 2
	OverhangNone  uint8 = 3

	OverhangInvalid uint8 = 255
)

// ValidAlignment reports whether raw is one of the layout layer's alignments.
func ValidAlignment(raw uint8) bool {
	return raw <= AlignmentLineEdge
}

// ValidOverhang reports whether raw is one of the layout layer's overhangs.
func ValidOverhang(raw uint8) bool {
	return raw <= OverhangNone
}

// Annotation is the native ruby annotation object. It owns one reference to
// every populated slot Text until Release is called.
type Annotation struct {
	texts      [PositionCount]*Text
	alignment  uint8
	overhang   uint8
	sizeFactor float64
	released   bool
}

// Create builds an annotation from the given slot texts. Each non-nil slot
// is retained; the caller keeps, and must release, its own references.
// Create returns nil when no slot is populated.
func Create(alignment, overhang uint8, sizeFactor float64, texts *[PositionCount]*Text) *Annotation {
	a := &Annotation{
		alignment:  alignment,
		overhang:   overhang,
		sizeFactor: sizeFactor,
	}
	populated := false
	for i, t := range texts {
		if t == nil {
			continue
		}
		a.texts[i] = t.Retain()
		populated = true
	}
	if !populated {
		return nil
	}
	return a
}

// TextForPosition returns the text of slot position, if any.
func (a *Annotation) TextForPosition(position uint8) (string, bool) {
	a.checkLive()
	if int(position) >= PositionCount || a.texts[position] == nil {
		return "", false
	}
	return a.texts[position].String(), true
}

// Alignment returns the raw alignment.
func (a *Annotation) Alignment() uint8 {
	a.checkLive()
	return a.alignment
}

// Overhang returns the raw overhang.
func (a *Annotation) Overhang() uint8 {
	a.checkLive()
	return a.overhang
}

// SizeFactor returns the ruby size as a fraction of the base font size.
func (a *Annotation) SizeFactor() float64 {
	a.checkLive()
	return a.sizeFactor
}

// Equal reports whether both annotations carry the same slots and fields.
func (a *Annotation) Equal(b *Annotation) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.alignment != b.alignment || a.overhang != b.overhang || a.sizeFactor != b.sizeFactor {
		return false
	}
	for i := range a.texts {
		at, bt := a.texts[i], b.texts[i]
		if (at == nil) != (bt == nil) {
			return false
		}
		if at != nil && at.String() != bt.String() {
			return false
		}
	}
	return true
}

// Release drops the annotation's slot references. Further use panics.
func (a *Annotation) Release() {
	a.checkLive()
	for i, t := range a.texts {
		if t != nil {
			t.Release()
			a.texts[i] = nil
		}
	}
	a.released = true
}

func (a *Annotation) checkLive() {
	errors.Precondition(!a.released, "annotation access", "use of released annotation")
}
