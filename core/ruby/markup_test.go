package ruby

import (
	"errors"
	"testing"

	rkerrors "github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/markup"
)

func TestDecodeMarkup(t *testing.T) {
	v, err := DecodeMarkup(markup.String("HIJ"))
	if err != nil {
		t.Fatalf("DecodeMarkup() error = %v", err)
	}
	if !v.Equal(New("HIJ")) {
		t.Errorf("DecodeMarkup() = %v, want %v", v, New("HIJ"))
	}
	if _, ok := v.SizeFactor(); ok {
		t.Error("SizeFactor() set by markup decode")
	}
	if _, ok := v.Alignment(); ok {
		t.Error("Alignment() set by markup decode")
	}
	if _, ok := v.Overhang(); ok {
		t.Error("Overhang() set by markup decode")
	}
}

func TestDecodeMarkupAnyString(t *testing.T) {
	for _, s := range []string{"", " ", "かんじ", "a)b", "\n"} {
		v, err := DecodeMarkup(markup.String(s))
		if err != nil {
			t.Errorf("DecodeMarkup(%q) error = %v", s, err)
			continue
		}
		if text, _ := v.Content().Text(); text != s {
			t.Errorf("DecodeMarkup(%q) text = %q", s, text)
		}
	}
}

func TestDecodeMarkupRejectsNonString(t *testing.T) {
	tests := []struct {
		name    string
		payload markup.Value
	}{
		{"number", markup.Number(3)},
		{"bool", markup.Bool(true)},
		{"null", markup.Null()},
		{"object", markup.Object(markup.Attribute{Key: "before", Value: markup.String("x")})},
		{"array", markup.Array(markup.String("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMarkup(tt.payload)
			if err == nil {
				t.Fatal("DecodeMarkup() error = nil, want error")
			}
			if !errors.Is(err, rkerrors.ErrInvalidInput) {
				t.Errorf("DecodeMarkup() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestDecodeMarkupFromParsedSource(t *testing.T) {
	doc, err := markup.Parse("^[hij](ruby: 'HIJ')")
	if err != nil {
		t.Fatalf("markup.Parse() error = %v", err)
	}
	payload, ok := doc.Segments[0].Lookup(MarkupName)
	if !ok {
		t.Fatal("no ruby attribute")
	}
	v, err := DecodeMarkup(payload)
	if err != nil {
		t.Fatalf("DecodeMarkup() error = %v", err)
	}
	if !v.Equal(New("HIJ")) {
		t.Errorf("DecodeMarkup() = %v, want %v", v, New("HIJ"))
	}

	doc, err = markup.Parse("^[hij](ruby: 12)")
	if err != nil {
		t.Fatalf("markup.Parse() error = %v", err)
	}
	payload, _ = doc.Segments[0].Lookup(MarkupName)
	if _, err := DecodeMarkup(payload); err == nil {
		t.Error("DecodeMarkup(number) error = nil, want error")
	}
}

func TestEncodeMarkup(t *testing.T) {
	payload, err := EncodeMarkup(New("HIJ"))
	if err != nil {
		t.Fatalf("EncodeMarkup() error = %v", err)
	}
	back, err := DecodeMarkup(payload)
	if err != nil || !back.Equal(New("HIJ")) {
		t.Errorf("DecodeMarkup(EncodeMarkup()) = %v, %v", back, err)
	}

	unsupported := []Value{
		New("x", WithSizeFactor(0.4)),
		New("x", WithAlignment(AlignStart)),
		New("x", WithOverhang(OverhangEnd)),
		NewWithContent(CustomContent(map[Position]string{After: "x"})),
	}
	for _, v := range unsupported {
		if _, err := EncodeMarkup(v); !errors.Is(err, rkerrors.ErrUnsupported) {
			t.Errorf("EncodeMarkup(%v) error = %v, want ErrUnsupported", v, err)
		}
	}
}
