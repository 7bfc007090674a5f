package media_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"forgeboard.app/linear-mcp/internal/media"
)

type mockDownloader struct {
	mu      sync.Mutex
	fetches []string
	fetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockDownloader) DownloadAttachment(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	m.fetches = append(m.fetches, url)
	m.mu.Unlock()
	if m.fetchFn != nil {
		return m.fetchFn(ctx, url)
	}
	return []byte("image-bytes"), nil
}

func (m *mockDownloader) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fetches)
}

var _ = Describe("DiskCache", func() {
	var (
		dir        string
		downloader *mockDownloader
		cache      *media.DiskCache
	)

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "images")
		downloader = &mockDownloader{}
		cache = media.NewDiskCache(dir, downloader)
	})

	It("downloads on first resolve and writes the file", func() {
		path, err := cache.Resolve(context.Background(), "https://uploads.example.com/a.png")
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HavePrefix(dir))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte("image-bytes")))
		Expect(downloader.fetchCount()).To(Equal(1))
	})

	It("resolves the same URL twice with one fetch and one path", func() {
		first, err := cache.Resolve(context.Background(), "https://uploads.example.com/a.png")
		Expect(err).NotTo(HaveOccurred())

		second, err := cache.Resolve(context.Background(), "https://uploads.example.com/a.png")
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(downloader.fetchCount()).To(Equal(1))
	})

	It("keys different URLs to different paths", func() {
		first, err := cache.Resolve(context.Background(), "https://uploads.example.com/a.png")
		Expect(err).NotTo(HaveOccurred())

		second, err := cache.Resolve(context.Background(), "https://uploads.example.com/b.png")
		Expect(err).NotTo(HaveOccurred())

		Expect(second).NotTo(Equal(first))
		Expect(downloader.fetchCount()).To(Equal(2))
	})

	It("propagates download failures", func() {
		downloader.fetchFn = func(_ context.Context, url string) ([]byte, error) {
			return nil, fmt.Errorf("status 403")
		}

		_, err := cache.Resolve(context.Background(), "https://uploads.example.com/a.png")
		Expect(err).To(HaveOccurred())
	})

	It("removes the whole directory on dispose", func() {
		_, err := cache.Resolve(context.Background(), "https://uploads.example.com/a.png")
		Expect(err).NotTo(HaveOccurred())

		Expect(cache.Dispose()).To(Succeed())
		_, err = os.Stat(dir)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})

var _ = Describe("Key", func() {
	It("keeps the URL path extension", func() {
		Expect(media.Key("https://example.com/shot.jpg")).To(HaveSuffix(".jpg"))
	})

	It("defaults to png when the path has no extension", func() {
		Expect(media.Key("https://uploads.example.com/abc?signature=xyz")).To(HaveSuffix(".png"))
	})

	It("is deterministic", func() {
		Expect(media.Key("https://example.com/a.png")).To(Equal(media.Key("https://example.com/a.png")))
	})

	It("differs for different URLs", func() {
		Expect(media.Key("https://example.com/a.png")).NotTo(Equal(media.Key("https://example.com/b.png")))
	})
})

var _ = Describe("Resolver", func() {
	var (
		dir        string
		downloader *mockDownloader
		resolver   *media.Resolver
	)

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "images")
		downloader = &mockDownloader{}
		resolver = media.NewResolver(media.NewDiskCache(dir, downloader))
	})

	It("returns the text unchanged with no images", func() {
		result := resolver.Resolve(context.Background(), "plain text, no images")
		Expect(result.Text).To(Equal("plain text, no images"))
		Expect(result.Images).To(BeEmpty())
		Expect(downloader.fetchCount()).To(BeZero())
	})

	It("resolves every referenced image", func() {
		markdown := "![a](https://example.com/a.png)\n![b](https://example.com/b.png)"
		result := resolver.Resolve(context.Background(), markdown)

		Expect(result.Text).To(Equal(markdown))
		Expect(result.Images).To(HaveLen(2))
		Expect(result.Images[0].URL).To(Equal("https://example.com/a.png"))
		Expect(result.Images[1].URL).To(Equal("https://example.com/b.png"))
	})

	It("degrades gracefully when one of two downloads fails", func() {
		downloader.fetchFn = func(_ context.Context, url string) ([]byte, error) {
			if strings.Contains(url, "broken") {
				return nil, fmt.Errorf("status 404")
			}
			return []byte("image-bytes"), nil
		}

		markdown := "![ok](https://example.com/ok.png)\n![broken](https://example.com/broken.png)"
		result := resolver.Resolve(context.Background(), markdown)

		Expect(result.Text).To(Equal(markdown))
		Expect(result.Images).To(HaveLen(1))
		Expect(result.Images[0].URL).To(Equal("https://example.com/ok.png"))
	})
})
