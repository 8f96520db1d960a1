package lessongen

import (
	"bytes"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/anchor"
)

// Pages are handed to the site generator as markdown.  HTML conversion is only
// needed by the markdown and headings template helpers, eg to inline a
// fragment of another document into an html block.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
			&anchor.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
}

// MarkdownToHTML converts a markdown fragment to html.
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := newMarkdown().Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Headings returns the heading tree of a markdown document.
func Headings(source string) []TOCNode {
	src := []byte(source)
	md := goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	toc := NewTOCTransformer()
	if d, ok := doc.(*ast.Document); ok {
		toc.Transform(d, reader, parser.NewContext())
	}
	return toc.TOC
}
