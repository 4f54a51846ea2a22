// Package encoding provides the text escaping and file codec utilities
// shared by the TTX content and serialization layers.
package encoding

import "strings"

// EscapeText escapes the XML metacharacters TagEditor expects in text
// content. Only the three basic entities are written; quotes pass through.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeAttr escapes text for use in XML attribute values.
// Includes quote escaping in addition to the basic entities.
func EscapeAttr(s string) string {
	s = EscapeText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// Unescape reverses EscapeText/EscapeAttr, mapping the five named XML
// entities back to their characters. The ampersand entity is decoded last
// so that a double-escaped sequence decodes exactly one level.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}
