// Package markup parses the inline attribute notation used to author
// annotated text:
//
//	abcdefg^[hij](ruby: 'HIJ')klmn
//
// "^[" base "](" attributes ")" marks base text with an attribute list. The
// attribute list is a JSON5-style sequence of key: value pairs; values may
// be strings (single or double quoted), numbers, booleans, null, objects or
// arrays. A backslash escapes any of \ ^ [ ] ( ) in plain or base text.
//
// The package only isolates attribute payloads; interpreting a payload is up
// to whoever owns the attribute key.
package markup

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/rubykit/core/encoding"
	"github.com/FocuswithJustin/rubykit/core/errors"
)

// Segment is a run of source text. Inline segments carry the attribute list
// that was attached to their base text.
type Segment struct {
	Text       string
	Inline     bool
	Attributes []Attribute
}

// Lookup returns the value of the attribute named key. Keys are unique
// within one attribute list.
func (s Segment) Lookup(key string) (Value, bool) {
	for _, a := range s.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return Value{}, false
}

// Document is a parsed markup source.
type Document struct {
	Segments []Segment
}

// PlainText returns the document's characters with all markup removed.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, s := range d.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// documentGrammar splits source into inline spans, escapes and plain text.
//
//nolint:govet // participle grammar tags are not standard struct tags
type documentGrammar struct {
	Parts []*partGrammar `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type partGrammar struct {
	Inline  *string `  @Inline`
	Escaped *string `| @Escaped`
	Text    *string `| @Text`
}

// inlinePattern matches a whole ^[base](attributes) span. Quoted strings in
// the attribute list may contain ')'.
const inlinePattern = `\^\[(?:[^\]\\]|\\.)*\]\((?:[^)'"]|'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*")*\)`

var inlineParts = regexp.MustCompile(`(?s)^\^\[((?:[^\]\\]|\\.)*)\]\((.*)\)$`)

// documentLexer defines the lexer for markup sources.
var documentLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Inline", Pattern: inlinePattern},
	{Name: "Escaped", Pattern: `\\[\\^\[\]()]`},
	{Name: "Text", Pattern: `[^\\^]+|[\\^]`},
})

// documentParser is the participle parser for markup sources.
var documentParser = participle.MustBuild[documentGrammar](
	participle.Lexer(documentLexer),
)

// attributeListGrammar is the participle grammar for inline attribute lists.
// Examples: "ruby: 'HIJ'", "ruby: {text: 'x'}, vertical: true"
//
//nolint:govet // participle grammar tags are not standard struct tags
type attributeListGrammar struct {
	Attributes []*attributeGrammar `( @@ ","? )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type attributeGrammar struct {
	Key   string        `( @Ident | @String )`
	Value *valueGrammar `":" @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type valueGrammar struct {
	String *string        `  @String`
	Number *float64       `| @Number`
	Bool   *string        `| @( "true" | "false" )`
	Null   bool           `| @"null"`
	Object *objectGrammar `| @@`
	Array  *arrayGrammar  `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type objectGrammar struct {
	Open       string              `@"{"`
	Attributes []*attributeGrammar `( @@ ","? )* "}"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type arrayGrammar struct {
	Open  string          `@"["`
	Items []*valueGrammar `( @@ ","? )* "]"`
}

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// attributeLexer defines the lexer for attribute lists.
var attributeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`},
	{Name: "Punct", Pattern: `[{}\[\]:,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// attributeParser is the participle parser for attribute lists.
var attributeParser = participle.MustBuild[attributeListGrammar](
	participle.Lexer(attributeLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a markup source into segments. Adjacent plain text is
// merged into a single segment; inline segments are never merged.
func Parse(src string) (*Document, error) {
	parsed, err := documentParser.ParseString("", src)
	if err != nil {
		return nil, &errors.ParseError{Format: "markup", Message: err.Error(), Err: err}
	}

	doc := &Document{}
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			doc.Segments = append(doc.Segments, Segment{Text: plain.String()})
			plain.Reset()
		}
	}

	for _, part := range parsed.Parts {
		switch {
		case part.Inline != nil:
			seg, err := parseInline(*part.Inline)
			if err != nil {
				return nil, err
			}
			flush()
			doc.Segments = append(doc.Segments, seg)
		case part.Escaped != nil:
			plain.WriteString((*part.Escaped)[1:])
		case part.Text != nil:
			plain.WriteString(*part.Text)
		}
	}
	flush()
	return doc, nil
}

// ParseAttributes parses a bare attribute list such as "ruby: 'HIJ'".
func ParseAttributes(src string) ([]Attribute, error) {
	parsed, err := attributeParser.ParseString("", src)
	if err != nil {
		return nil, &errors.ParseError{Format: "markup", Path: "attributes", Message: err.Error(), Err: err}
	}
	return convertAttributes(parsed.Attributes)
}

func parseInline(token string) (Segment, error) {
	m := inlineParts.FindStringSubmatch(token)
	if m == nil {
		return Segment{}, errors.NewParse("markup", "inline", "malformed inline span "+strconv.Quote(token))
	}
	attrs, err := ParseAttributes(m[2])
	if err != nil {
		return Segment{}, err
	}
	return Segment{Text: unescapeText(m[1]), Inline: true, Attributes: attrs}, nil
}

func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func convertAttributes(in []*attributeGrammar) ([]Attribute, error) {
	out := make([]Attribute, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, a := range in {
		key := a.Key
		if strings.HasPrefix(key, "'") || strings.HasPrefix(key, `"`) {
			k, err := unquote(key)
			if err != nil {
				return nil, errors.NewParse("markup", "attributes", err.Error())
			}
			key = k
		}
		if seen[key] {
			return nil, errors.NewParse("markup", "attributes", "duplicate key "+strconv.Quote(key))
		}
		seen[key] = true
		v, err := convertValue(a.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, Attribute{Key: key, Value: v})
	}
	return out, nil
}

func convertValue(v *valueGrammar) (Value, error) {
	switch {
	case v.String != nil:
		s, err := unquote(*v.String)
		if err != nil {
			return Value{}, errors.NewParse("markup", "attributes", err.Error())
		}
		return String(s), nil
	case v.Number != nil:
		return Number(*v.Number), nil
	case v.Bool != nil:
		return Bool(*v.Bool == "true"), nil
	case v.Null:
		return Null(), nil
	case v.Object != nil:
		attrs, err := convertAttributes(v.Object.Attributes)
		if err != nil {
			return Value{}, err
		}
		return Object(attrs...), nil
	case v.Array != nil:
		items := make([]Value, 0, len(v.Array.Items))
		for _, item := range v.Array.Items {
			iv, err := convertValue(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, iv)
		}
		return Array(items...), nil
	default:
		return Value{}, errors.NewParse("markup", "attributes", "empty value")
	}
}

// Format writes segments back as a markup source.
func Format(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		if !s.Inline {
			sb.WriteString(escapeText(s.Text))
			continue
		}
		sb.WriteString("^[")
		sb.WriteString(escapeText(s.Text))
		sb.WriteString("](")
		sb.WriteString(formatAttributes(s.Attributes))
		sb.WriteString(")")
	}
	return sb.String()
}

func escapeText(s string) string {
	return encoding.EscapeMarkup(s)
}
