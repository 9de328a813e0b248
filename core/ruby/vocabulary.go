package ruby

import (
	"fmt"

	"github.com/FocuswithJustin/rubykit/core/ctruby"
)

// Position is where ruby text is anchored relative to its base text. The
// raw value is the native slot index.
type Position uint8

// Position constants.
const (
	Before         Position = Position(ctruby.PositionBefore)
	After          Position = Position(ctruby.PositionAfter)
	InterCharacter Position = Position(ctruby.PositionInterCharacter)
	Inline         Position = Position(ctruby.PositionInline)
)

var positionNames = map[Position]string{
	Before:         "before",
	After:          "after",
	InterCharacter: "interCharacter",
	Inline:         "inline",
}

// Positions returns every position in native slot order.
func Positions() []Position {
	return []Position{Before, After, InterCharacter, Inline}
}

// PositionFromRaw maps a native slot index back to a Position.
func PositionFromRaw(raw uint8) (Position, bool) {
	p := Position(raw)
	_, ok := positionNames[p]
	return p, ok
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler. Positions are map keys in
// custom content, so the text form is what JSON objects carry.
func (p Position) MarshalText() ([]byte, error) {
	name, ok := positionNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown ruby position %d", uint8(p))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) error {
	for k, name := range positionNames {
		if name == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown ruby position %q", b)
}

// Alignment controls how ruby text is distributed over its base text.
type Alignment uint8

// Alignment constants. AlignInvalid only appears when decoding a native
// value outside the known set.
const (
	AlignAuto             Alignment = Alignment(ctruby.AlignmentAuto)
	AlignStart            Alignment = Alignment(ctruby.AlignmentStart)
	AlignCenter           Alignment = Alignment(ctruby.AlignmentCenter)
	AlignEnd              Alignment = Alignment(ctruby.AlignmentEnd)
	AlignDistributeLetter Alignment = Alignment(ctruby.AlignmentDistributeLetter)
	AlignDistributeSpace  Alignment = Alignment(ctruby.AlignmentDistributeSpace)
	AlignLineEdge         Alignment = Alignment(ctruby.AlignmentLineEdge)
	AlignInvalid          Alignment = Alignment(ctruby.AlignmentInvalid)
)

var alignmentNames = map[Alignment]string{
	AlignInvalid:          "invalid",
	AlignAuto:             "auto",
	AlignStart:            "start",
	AlignCenter:           "center",
	AlignEnd:              "end",
	AlignDistributeLetter: "distributeLetter",
	AlignDistributeSpace:  "distributeSpace",
	AlignLineEdge:         "lineEdge",
}

// AlignmentFromRaw maps a raw value to an Alignment. The sentinel 255 is a
// member of the set and maps to AlignInvalid.
func AlignmentFromRaw(raw uint8) (Alignment, bool) {
	a := Alignment(raw)
	_, ok := alignmentNames[a]
	return a, ok
}

func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	name, ok := alignmentNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown ruby alignment %d", uint8(a))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(b []byte) error {
	for k, name := range alignmentNames {
		if name == string(b) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown ruby alignment %q", b)
}

// Overhang controls how far ruby text may extend past its base text.
type Overhang uint8

// Overhang constants.
const (
	OverhangAuto    Overhang = Overhang(ctruby.OverhangAuto)
	OverhangStart   Overhang = Overhang(ctruby.OverhangStart)
	OverhangEnd     Overhang = Overhang(ctruby.OverhangEnd)
	OverhangNone    Overhang = Overhang(ctruby.OverhangNone)
	OverhangInvalid Overhang = Overhang(ctruby.OverhangInvalid)
)

var overhangNames = map[Overhang]string{
	OverhangInvalid: "invalid",
	OverhangAuto:    "auto",
	OverhangStart:   "start",
	OverhangEnd:     "end",
	OverhangNone:    "none",
}

// OverhangFromRaw maps a raw value to an Overhang.
func OverhangFromRaw(raw uint8) (Overhang, bool) {
	o := Overhang(raw)
	_, ok := overhangNames[o]
	return o, ok
}

func (o Overhang) String() string {
	if name, ok := overhangNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Overhang(%d)", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Overhang) MarshalText() ([]byte, error) {
	name, ok := overhangNames[o]
	if !ok {
		return nil, fmt.Errorf("unknown ruby overhang %d", uint8(o))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Overhang) UnmarshalText(b []byte) error {
	for k, name := range overhangNames {
		if name == string(b) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown ruby overhang %q", b)
}
