package ruby

import (
	"github.com/FocuswithJustin/rubykit/core/ctruby"
	"github.com/FocuswithJustin/rubykit/core/errors"
)

// EncodeNative converts v into a native annotation. The caller owns the
// returned annotation and must Release it.
//
// Custom content must hold at least one entry; an empty mapping panics with
// *errors.ContractError before any native text is created.
func EncodeNative(v Value) *ctruby.Annotation {
	if v.content.kind == ContentCustom {
		errors.Precondition(len(v.content.texts) > 0, "encode native ruby", "custom content has no positions")
	}

	var texts [ctruby.PositionCount]*ctruby.Text
	defer func() {
		for _, t := range texts {
			if t != nil {
				t.Release()
			}
		}
	}()

	switch v.content.kind {
	case ContentDefault:
		texts[Before] = ctruby.NewText(v.content.text)
	case ContentCustom:
		for p, s := range v.content.texts {
			if int(p) >= ctruby.PositionCount {
				continue
			}
			texts[p] = ctruby.NewText(s)
		}
	}

	sizeFactor := DefaultSizeFactor
	if v.sizeFactor != nil {
		sizeFactor = *v.sizeFactor
	}

	a := ctruby.Create(nativeAlignment(v.alignment), nativeOverhang(v.overhang), sizeFactor, &texts)
	errors.Precondition(a != nil, "encode native ruby", "no slot text produced")
	return a
}

// DecodeNative converts a native annotation into a Value. The result always
// holds custom content, even when the annotation was produced from default
// content. An annotation without any slot text panics with
// *errors.ContractError.
func DecodeNative(a *ctruby.Annotation) Value {
	errors.Precondition(a != nil, "decode native ruby", "nil annotation")

	texts := make(map[Position]string, ctruby.PositionCount)
	for _, raw := range []uint8{
		ctruby.PositionBefore,
		ctruby.PositionAfter,
		ctruby.PositionInterCharacter,
		ctruby.PositionInline,
	} {
		s, ok := a.TextForPosition(raw)
		if !ok {
			continue
		}
		if p, known := PositionFromRaw(raw); known {
			texts[p] = s
		}
	}
	errors.Precondition(len(texts) > 0, "decode native ruby", "annotation has no slot text")

	alignment, ok := AlignmentFromRaw(a.Alignment())
	if !ok {
		alignment = AlignInvalid
	}
	overhang, ok := OverhangFromRaw(a.Overhang())
	if !ok {
		overhang = OverhangInvalid
	}

	return NewWithContent(CustomContent(texts),
		WithSizeFactor(a.SizeFactor()),
		WithAlignment(alignment),
		WithOverhang(overhang),
	)
}

func nativeAlignment(a *Alignment) uint8 {
	if a == nil || !ctruby.ValidAlignment(uint8(*a)) {
		return ctruby.AlignmentAuto
	}
	return uint8(*a)
}

func nativeOverhang(o *Overhang) uint8 {
	if o == nil || !ctruby.ValidOverhang(uint8(*o)) {
		return ctruby.OverhangAuto
	}
	return uint8(*o)
}
