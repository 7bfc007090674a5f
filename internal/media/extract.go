// Package media turns markdown image references into locally cached files
// so tool responses can inline the bytes.
package media

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to share;
// actual parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// ExtractImageURLs returns the destination URLs of every markdown image
// reference in document order. Plain links and bare URLs are ignored.
// Duplicate references are kept; the cache collapses repeat downloads.
// Empty input yields nil.
func ExtractImageURLs(markdown string) []string {
	if markdown == "" {
		return nil
	}

	source := []byte(markdown)
	reader := text.NewReader(source)
	document := getMarkdownParser().Parser().Parse(reader)

	var urls []string
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := n.(*ast.Image); ok {
			if dest := string(img.Destination); dest != "" {
				urls = append(urls, dest)
			}
		}
		return ast.WalkContinue, nil
	})
	return urls
}
