// Package md converts between markdown and rich-text documents.
package md

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/open-cli-collective/rtdoc/pkg/model"
	"github.com/open-cli-collective/rtdoc/pkg/schema"
)

// mdParser is a pre-configured goldmark instance with GFM table extension.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// ToHTML converts markdown content to HTML.
func ToHTML(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := mdParser.Convert(markdown, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToDocument converts markdown content to a document. Markdown the schema
// has no kind for, such as tables and images, keeps only its text.
func ToDocument(markdown []byte) (*model.Node, error) {
	html, err := ToHTML(markdown)
	if err != nil {
		return nil, err
	}
	return schema.ParseString(html), nil
}
