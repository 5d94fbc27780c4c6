package sitegen

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	RendererGomarkdown = "gomarkdown"
	RendererGoldmark   = "goldmark"

	HtmlFlags      = html.CommonFlags
	SiteExtensions = parser.CommonExtensions |
		parser.AutoHeadingIDs
)

// Renderer converts preprocessed Markdown into an HTML fragment.
// Implementations support fenced code blocks and replace a paragraph
// holding only [TOC] with a table of contents. Callers treat any
// error as fatal to the build.
type Renderer interface {
	Render(md []byte) ([]byte, error)
}

// NewRenderer returns the renderer registered under name.
// An empty name selects the gomarkdown renderer.
func NewRenderer(name string) (Renderer, error) {
	switch name {
	case "", RendererGomarkdown:
		return MarkdownRenderer{}, nil
	case RendererGoldmark:
		return NewGoldmarkRenderer(), nil
	}
	return nil, fmt.Errorf("unknown renderer '%s'", name)
}

// ToHtml converts md (Markdown) into HTML document
func ToHtml(md []byte) []byte {
	root := markdown.Parse(md, parser.NewWithExtensions(SiteExtensions))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: HtmlFlags,
	})
	return markdown.Render(root, renderer)
}

// MarkdownRenderer renders with gomarkdown.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(md []byte) ([]byte, error) {
	return InsertTOC(ToHtml(md))
}

// GoldmarkRenderer renders GitHub-flavored Markdown with goldmark,
// highlighting fenced code with chroma CSS classes.
// Raw HTML is passed through so generated fragments survive rendering.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			gmparser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

func (g *GoldmarkRenderer) Render(md []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(md, &buf); err != nil {
		return nil, err
	}
	return InsertTOC(buf.Bytes())
}
