package media

import (
	"context"
	"log/slog"

	"forgeboard.app/linear-mcp/common/conc"
)

// Attachment is one resolved image: where it landed on disk and where it
// came from.
type Attachment struct {
	Path string
	URL  string
}

// Result is a self-contained rendering input: the original markdown text
// (never rewritten) plus the images that resolved.
type Result struct {
	Text   string
	Images []Attachment
}

// Resolver extracts image references from markdown and materializes them
// through the cache.
type Resolver struct {
	cache Cache
}

func NewResolver(cache Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Resolve fetches every image referenced by the markdown body. All fetches
// for one document run concurrently without a bound: a single document's
// image count is small, unlike the cross-issue fan-out which is capped.
// Images that fail to resolve are logged and omitted; the text always
// comes back unchanged. Resolve itself never fails.
func (r *Resolver) Resolve(ctx context.Context, markdown string) Result {
	urls := ExtractImageURLs(markdown)
	if len(urls) == 0 {
		return Result{Text: markdown}
	}

	resolved, err := conc.Map(ctx, urls, conc.Unbounded, func(ctx context.Context, url string) (*Attachment, error) {
		path, err := r.cache.Resolve(ctx, url)
		if err != nil {
			slog.WarnContext(ctx, "image resolution failed", "url", url, "error", err)
			return nil, nil
		}
		return &Attachment{Path: path, URL: url}, nil
	})
	if err != nil {
		// Only context cancellation reaches here; per-image failures are
		// absorbed above.
		slog.WarnContext(ctx, "image resolution aborted", "error", err)
		return Result{Text: markdown}
	}

	images := make([]Attachment, 0, len(resolved))
	for _, a := range resolved {
		if a != nil {
			images = append(images, *a)
		}
	}
	return Result{Text: markdown, Images: images}
}
