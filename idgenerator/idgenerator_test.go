package idgenerator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_Next(t *testing.T) {
	t.Run("starts at one", func(t *testing.T) {
		seq := New()
		assert.Equal(t, int64(0), seq.Current())
		assert.Equal(t, int64(1), seq.Next())
		assert.Equal(t, int64(2), seq.Next())
		assert.Equal(t, int64(2), seq.Current())
	})

	t.Run("concurrent callers never share an id", func(t *testing.T) {
		seq := New()
		numG := 10000

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[int64]struct{}, numG)
		)
		wg.Add(numG)
		for i := 0; i < numG; i++ {
			go func() {
				defer wg.Done()
				id := seq.Next()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, numG)
		assert.Equal(t, int64(numG), seq.Current())
	})
}
