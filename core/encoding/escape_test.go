package encoding

import "testing"

func TestEscapeXMLText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "漢字かな", "漢字かな"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"less than", "a < b", "a &lt; b"},
		{"greater than", "a > b", "a &gt; b"},
		{"quotes preserved", `He said "hello"`, `He said "hello"`},
		{"all three", "<rt>&</rt>", "&lt;rt&gt;&amp;&lt;/rt&gt;"},
		{"no double escape order", "&lt;", "&amp;lt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeXMLText(tt.input)
			if got != tt.want {
				t.Errorf("EscapeXMLText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeXMLAttr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "before", "before"},
		{"double quote", `say "hi"`, "say &quot;hi&quot;"},
		{"single quote kept", "it's", "it's"},
		{"entities", "a<b&c>d", "a&lt;b&amp;c&gt;d"},
		{"newline", "a\nb", "a&#10;b"},
		{"tab and return", "a\tb\rc", "a&#9;b&#13;c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeXMLAttr(tt.input)
			if got != tt.want {
				t.Errorf("EscapeXMLAttr(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "abc", "abc"},
		{"caret", "a^b", `a\^b`},
		{"brackets", "[x]", `\[x\]`},
		{"backslash", `a\b`, `a\\b`},
		{"parens untouched", "(x)", "(x)"},
		{"inline lookalike", "^[a](ruby: 'A')", `\^\[a\](ruby: 'A')`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeMarkup(tt.input)
			if got != tt.want {
				t.Errorf("EscapeMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
