package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

var frontmatterDelim = []byte("---\n")

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Document is a rendered markdown source.
type Document struct {
	HTML []byte
	// Body is the source with the frontmatter block removed.
	Body []byte
	Meta map[string]any
}

// ParseWithFrontmatter renders source to HTML. Raw HTML in the source is
// omitted from the output. Frontmatter that fails to decode yields empty
// metadata rather than an error.
func (p *Parser) ParseWithFrontmatter(source []byte) (*Document, error) {
	context := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(context))
	if err != nil {
		return nil, err
	}

	meta := make(map[string]any)
	data := frontmatter.Get(context)
	if data != nil {
		err = data.Decode(&meta)
		if err != nil {
			meta = make(map[string]any)
		}
	}

	return &Document{HTML: buf.Bytes(), Body: stripFrontmatter(source), Meta: meta}, nil
}

func stripFrontmatter(source []byte) []byte {
	if !bytes.HasPrefix(source, frontmatterDelim) {
		return source
	}
	rest := source[len(frontmatterDelim):]
	end := bytes.Index(rest, append([]byte("\n"), frontmatterDelim...))
	if end == -1 {
		return source
	}
	return bytes.TrimLeft(rest[end+1+len(frontmatterDelim):], "\n")
}
