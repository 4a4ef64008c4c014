package entity

import "strings"

// Tag annotates text with XML-style tags around resolved matches.
// Matches must be non-overlapping and ordered by start offset, as
// produced by Resolve. Text outside the spans passes through
// unchanged, so stripping the tags restores the input exactly.
func Tag(text string, matches []Match) string {
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(matches)*16)
	pos := 0
	for _, m := range matches {
		if m.Start < pos || m.End > len(text) {
			continue
		}
		name := m.Pattern.Type.TagName()
		b.WriteString(text[pos:m.Start])
		b.WriteByte('<')
		b.WriteString(name)
		b.WriteByte('>')
		b.WriteString(text[m.Start:m.End])
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
		pos = m.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
