package content

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Linkify))
	// UGC policy keeps links, lists, emphasis and tables but strips scripts and handlers.
	policy = bluemonday.UGCPolicy()
)

// Markdown renders a markdown document to sanitized HTML.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// Inline renders a one-line markdown snippet (a product bullet, for instance)
// without the wrapping paragraph. Invalid input falls back to escaped text.
func Inline(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(policy.SanitizeBytes(trimParagraph(buf.Bytes())))
}

// Sanitize cleans raw HTML authored in content files.
func Sanitize(src string) template.HTML {
	return template.HTML(policy.Sanitize(src))
}
