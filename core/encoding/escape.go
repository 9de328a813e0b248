// Package encoding provides shared text escaping utilities.
package encoding

import "strings"

var (
	xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;")
	markupEscaper = strings.NewReplacer(`\`, `\\`, `^`, `\^`, `[`, `\[`, `]`, `\]`)
)

// EscapeXMLText escapes the basic XML entities for element content.
func EscapeXMLText(s string) string {
	return xmlTextEscaper.Replace(s)
}

// EscapeXMLAttr escapes text for a double-quoted XML attribute value.
// Whitespace control characters are written as character references so
// attribute normalization does not turn them into spaces.
func EscapeXMLAttr(s string) string {
	return xmlAttrEscaper.Replace(s)
}

// EscapeMarkup escapes the characters that open or close an inline markup
// span, so s reads back as plain text.
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
