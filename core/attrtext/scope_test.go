package attrtext

import (
	"errors"
	"testing"

	rkerrors "github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/ruby"
)

func TestFromMarkupScenario(t *testing.T) {
	s, err := FromMarkup("abcdefg^[hij](ruby: 'HIJ')klmn")
	if err != nil {
		t.Fatalf("FromMarkup() error = %v", err)
	}
	s.SetVerticalGlyphAll(true)
	checkScenario(t, s)
}

func TestFromMarkupVerticalGlyph(t *testing.T) {
	s, err := FromMarkup("^[abc](verticalGlyph: true, ruby: 'ABC')def")
	if err != nil {
		t.Fatalf("FromMarkup() error = %v", err)
	}
	runs := s.Runs()
	if len(runs) != 2 {
		t.Fatalf("Runs() = %v, want 2 runs", runs)
	}
	if b, ok := runs[0].Attributes.VerticalGlyph(); !ok || !b {
		t.Errorf("runs[0] verticalGlyph = %v, %v", b, ok)
	}
	if v, ok := runs[0].Attributes.Ruby(); !ok || !v.Equal(ruby.New("ABC")) {
		t.Errorf("runs[0] ruby = %v, %v", v, ok)
	}
}

func TestFromMarkupIgnoresUnknownKeys(t *testing.T) {
	s, err := FromMarkup("a^[b](color: 'red')c")
	if err != nil {
		t.Fatalf("FromMarkup() error = %v", err)
	}
	if !s.Equal(New("abc")) {
		t.Errorf("FromMarkup() = %v, want plain abc", s)
	}
}

func TestFromMarkupEmptyBaseUnknownKey(t *testing.T) {
	s, err := FromMarkup("ab^[](color: 'red')cd")
	if err != nil {
		t.Fatalf("FromMarkup() error = %v", err)
	}
	if !s.Equal(New("abcd")) {
		t.Errorf("FromMarkup() = %v, want plain abcd", s)
	}
}

func TestFromMarkupErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"ruby number", "^[a](ruby: 1)"},
		{"vertical string", "^[a](verticalGlyph: 'yes')"},
		{"bad attribute list", "^[a](ruby: )"},
		{"duplicate ruby", "^[a](ruby: 'X', ruby: 'Y')"},
		{"ruby on empty base", "ab^[](ruby: 'X')cd"},
		{"vertical on empty base", "ab^[](verticalGlyph: true)cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMarkup(tt.src)
			if !errors.Is(err, rkerrors.ErrInvalidInput) {
				t.Errorf("FromMarkup(%q) error = %v, want ErrInvalidInput", tt.src, err)
			}
		})
	}
}

func TestToMarkupRoundTrip(t *testing.T) {
	s := scenario(t)
	src, err := ToMarkup(s)
	if err != nil {
		t.Fatalf("ToMarkup() error = %v", err)
	}
	back, err := FromMarkup(src)
	if err != nil {
		t.Fatalf("FromMarkup(%q) error = %v", src, err)
	}
	if !back.Equal(s) {
		t.Errorf("FromMarkup(ToMarkup()) = %v, want %v", back, s)
	}
}

func TestToMarkupUnsupported(t *testing.T) {
	s := New("abc")
	v := ruby.New("x", ruby.WithSizeFactor(0.3))
	if err := s.SetRuby(0, 3, &v); err != nil {
		t.Fatalf("SetRuby() error = %v", err)
	}
	if _, err := ToMarkup(s); !errors.Is(err, rkerrors.ErrUnsupported) {
		t.Errorf("ToMarkup() error = %v, want ErrUnsupported", err)
	}
}
