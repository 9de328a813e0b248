package attrtext

import (
	"encoding/json"
	"errors"
	"testing"

	rkerrors "github.com/FocuswithJustin/rubykit/core/errors"
)

func TestScenarioJSONRoundTrip(t *testing.T) {
	s := scenario(t)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	want := `{"runs":[` +
		`{"text":"abcdefg","attributes":{"NSVerticalGlyphForm":true}},` +
		`{"text":"hij","attributes":{"CTRubyAnnotation":{"text":{"default":"HIJ"}},"NSVerticalGlyphForm":true}},` +
		`{"text":"klmn","attributes":{"NSVerticalGlyphForm":true}}]}`
	if string(data) != want {
		t.Errorf("json.Marshal = %s, want %s", data, want)
	}

	var back String
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	checkScenario(t, &back)
	if !back.Equal(s) {
		t.Errorf("decoded = %v, want %v", &back, s)
	}
}

func TestUnmarshalJSONMergesRuns(t *testing.T) {
	var s String
	in := `{"runs":[{"text":"ab","attributes":{}},{"text":"cd","attributes":{}}]}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if !s.Equal(New("abcd")) {
		t.Errorf("decoded = %v, want single run abcd", &s)
	}
}

func TestEmptyStringJSON(t *testing.T) {
	data, err := json.Marshal(New(""))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(data) != `{"runs":[]}` {
		t.Errorf("json.Marshal = %s, want {\"runs\":[]}", data)
	}
}

func TestUnmarshalJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"null", `null`},
		{"array", `[]`},
		{"empty run", `{"runs":[{"text":"","attributes":{}}]}`},
		{"bad ruby", `{"runs":[{"text":"a","attributes":{"CTRubyAnnotation":{"text":{"custom":{}}}}}]}`},
		{"vertical not bool", `{"runs":[{"text":"a","attributes":{"NSVerticalGlyphForm":"yes"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s String
			err := json.Unmarshal([]byte(tt.input), &s)
			if !errors.Is(err, rkerrors.ErrInvalidInput) {
				t.Errorf("json.Unmarshal(%s) error = %v, want ErrInvalidInput", tt.input, err)
			}
		})
	}
}
