package dom

import (
	"sort"
	"strings"
)

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// OuterHTML serializes the element including its own tag.
// Attributes appear in sorted order so output is deterministic.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	e.writeHTML(&sb)
	return sb.String()
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for _, c := range e.children {
		c.writeHTML(&sb)
	}
	return sb.String()
}

func (e *Element) writeHTML(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.TagName)

	keys := make([]string, 0, len(e.attrs)+len(e.boolAttrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	for k := range e.boolAttrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if e.boolAttrs[k] {
			sb.WriteByte(' ')
			sb.WriteString(k)
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(e.attrs[k]))
		sb.WriteByte('"')
	}

	if voidElements[e.TagName] {
		sb.WriteByte('>')
		return
	}

	sb.WriteByte('>')
	for _, c := range e.children {
		c.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.TagName)
	sb.WriteByte('>')
}

func (t *Text) writeHTML(sb *strings.Builder) {
	sb.WriteString(escapeHTML(t.Data))
}

func (r *RawHTML) writeHTML(sb *strings.Builder) {
	sb.WriteString(r.Markup)
}

func (f *Fragment) writeHTML(sb *strings.Builder) {
	for _, c := range f.children {
		c.writeHTML(sb)
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// In addition to the standard entities it escapes whitespace characters
// that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// booleanAttrs are attributes that render as just the attribute name.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"hidden":          true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"selected":        true,
}

// IsBooleanAttr returns true if the attribute renders without a value.
func IsBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
