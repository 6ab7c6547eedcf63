package model

import (
	"strings"

	"golang.org/x/net/html"
)

// AttrValue returns the value of the attribute key on el, or "".
func AttrValue(el *html.Node, key string) string {
	if el == nil {
		return ""
	}
	for _, attr := range el.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether el carries the attribute key, even if empty.
func HasAttr(el *html.Node, key string) bool {
	if el == nil {
		return false
	}
	for _, attr := range el.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// ParseStyle splits an inline style declaration list into property/value
// pairs. Property names are lower-cased; empty declarations are dropped and
// later declarations win.
// For example: "text-align: center; color: red" -> {"text-align": "center", "color": "red"}
func ParseStyle(style string) map[string]string {
	result := make(map[string]string)
	for _, part := range strings.Split(style, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		value := strings.TrimSpace(kv[1])
		if key != "" && value != "" {
			result[key] = value
		}
	}
	return result
}

// StyleValue returns the inline style property prop of el, or "".
func StyleValue(el *html.Node, prop string) string {
	return ParseStyle(AttrValue(el, "style"))[prop]
}
