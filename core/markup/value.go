package markup

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type of an attribute value.
type Kind int

// Value kinds.
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

var kindNames = map[Kind]string{
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindNull:   "null",
	KindObject: "object",
	KindArray:  "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is an attribute value from an inline attribute list.
type Value struct {
	kind   Kind
	str    string
	num    float64
	b      bool
	object []Attribute
	array  []Value
}

// Attribute is a single key/value pair of an inline attribute list.
type Attribute struct {
	Key   string
	Value Value
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a number value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Object returns an object value.
func Object(attrs ...Attribute) Value { return Value{kind: KindObject, object: attrs} }

// Array returns an array value.
func Array(items ...Value) Value { return Value{kind: KindArray, array: items} }

// Kind reports the value's type.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the number payload.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsObject returns the object members in source order.
func (v Value) AsObject() ([]Attribute, bool) { return v.object, v.kind == KindObject }

// AsArray returns the array items.
func (v Value) AsArray() ([]Value, bool) { return v.array, v.kind == KindArray }

// Format writes v back in attribute-list syntax. Strings use single quotes.
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	case KindObject:
		return "{" + formatAttributes(v.object) + "}"
	case KindArray:
		parts := make([]string, len(v.array))
		for i, item := range v.array {
			parts[i] = item.Format()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

func formatAttributes(attrs []Attribute) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		key := a.Key
		if !identPattern.MatchString(key) {
			key = quote(key)
		}
		parts[i] = key + ": " + a.Value.Format()
	}
	return strings.Join(parts, ", ")
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// unquote decodes a single- or double-quoted string literal.
func unquote(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != lit[len(lit)-1] || (lit[0] != '\'' && lit[0] != '"') {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	body := []rune(lit[1 : len(lit)-1])
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		r := body[i]
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("unterminated escape in %s", lit)
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'u':
			if i+4 >= len(body) {
				return "", fmt.Errorf("short unicode escape in %s", lit)
			}
			n, err := strconv.ParseUint(string(body[i+1:i+5]), 16, 32)
			if err != nil {
				return "", fmt.Errorf("bad unicode escape in %s: %w", lit, err)
			}
			sb.WriteRune(rune(n))
			i += 4
		default:
			sb.WriteRune(body[i])
		}
	}
	return sb.String(), nil
}
