package ruby

import "testing"

func TestPositionFromRaw(t *testing.T) {
	tests := []struct {
		raw    uint8
		want   Position
		wantOK bool
	}{
		{0, Before, true},
		{1, After, true},
		{2, InterCharacter, true},
		{3, Inline, true},
		{4, 0, false},
		{255, 0, false},
	}

	for _, tt := range tests {
		got, ok := PositionFromRaw(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("PositionFromRaw(%d) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("PositionFromRaw(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestPositionsOrder(t *testing.T) {
	for i, p := range Positions() {
		if uint8(p) != uint8(i) {
			t.Errorf("Positions()[%d] = %d, want raw %d", i, uint8(p), i)
		}
	}
}

func TestAlignmentFromRaw(t *testing.T) {
	known := map[uint8]Alignment{
		0:   AlignAuto,
		1:   AlignStart,
		2:   AlignCenter,
		3:   AlignEnd,
		4:   AlignDistributeLetter,
		5:   AlignDistributeSpace,
		6:   AlignLineEdge,
		255: AlignInvalid,
	}
	for raw := 0; raw < 256; raw++ {
		got, ok := AlignmentFromRaw(uint8(raw))
		want, wantOK := known[uint8(raw)]
		if ok != wantOK {
			t.Errorf("AlignmentFromRaw(%d) ok = %v, want %v", raw, ok, wantOK)
			continue
		}
		if ok && got != want {
			t.Errorf("AlignmentFromRaw(%d) = %v, want %v", raw, got, want)
		}
	}
}

func TestOverhangFromRaw(t *testing.T) {
	known := map[uint8]Overhang{
		0:   OverhangAuto,
		1:   OverhangStart,
		2:   OverhangEnd,
		3:   OverhangNone,
		255: OverhangInvalid,
	}
	for raw := 0; raw < 256; raw++ {
		got, ok := OverhangFromRaw(uint8(raw))
		want, wantOK := known[uint8(raw)]
		if ok != wantOK {
			t.Errorf("OverhangFromRaw(%d) ok = %v, want %v", raw, ok, wantOK)
			continue
		}
		if ok && got != want {
			t.Errorf("OverhangFromRaw(%d) = %v, want %v", raw, got, want)
		}
	}
}

func TestVocabularyText(t *testing.T) {
	tests := []struct {
		name string
		m    interface{ MarshalText() ([]byte, error) }
		want string
	}{
		{"position", InterCharacter, "interCharacter"},
		{"alignment", AlignDistributeLetter, "distributeLetter"},
		{"alignment sentinel", AlignInvalid, "invalid"},
		{"overhang", OverhangNone, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.m.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText() error = %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("MarshalText() = %q, want %q", b, tt.want)
			}
		})
	}

	var p Position
	if err := p.UnmarshalText([]byte("inline")); err != nil || p != Inline {
		t.Errorf("UnmarshalText(inline) = %v, %v; want Inline", p, err)
	}
	if err := p.UnmarshalText([]byte("above")); err == nil {
		t.Error("UnmarshalText(above) error = nil, want error")
	}
	if _, err := Position(9).MarshalText(); err == nil {
		t.Error("Position(9).MarshalText() error = nil, want error")
	}

	var a Alignment
	if err := a.UnmarshalText([]byte("lineEdge")); err != nil || a != AlignLineEdge {
		t.Errorf("UnmarshalText(lineEdge) = %v, %v; want AlignLineEdge", a, err)
	}
	var o Overhang
	if err := o.UnmarshalText([]byte("start")); err != nil || o != OverhangStart {
		t.Errorf("UnmarshalText(start) = %v, %v; want OverhangStart", o, err)
	}
}

func TestVocabularyString(t *testing.T) {
	if got := Before.String(); got != "before" {
		t.Errorf("Before.String() = %q", got)
	}
	if got := Position(7).String(); got != "Position(7)" {
		t.Errorf("Position(7).String() = %q", got)
	}
	if got := Alignment(9).String(); got != "Alignment(9)" {
		t.Errorf("Alignment(9).String() = %q", got)
	}
	if got := Overhang(9).String(); got != "Overhang(9)" {
		t.Errorf("Overhang(9).String() = %q", got)
	}
}
