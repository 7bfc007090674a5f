package conc_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"forgeboard.app/linear-mcp/common/conc"
)

var _ = Describe("Map", func() {
	It("maps every item", func() {
		out, err := conc.Map(context.Background(), []int{1, 2, 3, 4}, 2, func(_ context.Context, n int) (int, error) {
			return n * 10, nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]int{10, 20, 30, 40}))
	})

	It("returns an empty result for empty input", func() {
		out, err := conc.Map(context.Background(), nil, 2, func(_ context.Context, n int) (int, error) {
			return n, nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
	})

	It("preserves input order regardless of completion order", func() {
		// The middle element finishes last; its slot must still be the
		// middle of the output.
		out, err := conc.Map(context.Background(), []string{"a", "b", "c"}, conc.Unbounded, func(_ context.Context, s string) (string, error) {
			if s == "b" {
				time.Sleep(50 * time.Millisecond)
			}
			return s + "!", nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]string{"a!", "b!", "c!"}))
	})

	It("never runs more than the limit at once", func() {
		var mu sync.Mutex
		current, peak := 0, 0

		items := []int{1, 2, 3, 4, 5, 6, 7, 8}
		_, err := conc.Map(context.Background(), items, 3, func(_ context.Context, n int) (int, error) {
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
			return n, nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(peak).To(BeNumerically("<=", 3))
	})

	It("returns the first error", func() {
		boom := errors.New("boom")
		_, err := conc.Map(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, n int) (int, error) {
			if n == 2 {
				return 0, boom
			}
			return n, nil
		})
		Expect(err).To(MatchError(boom))
	})

	It("stops on context cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := conc.Map(ctx, []int{1, 2, 3}, 1, func(ctx context.Context, n int) (int, error) {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(time.Second):
				return n, nil
			}
		})
		Expect(err).To(HaveOccurred())
	})
})
