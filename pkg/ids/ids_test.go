package ids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUID(t *testing.T) {
	gen := UUID()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.New()
		assert.Len(t, id, 32)
		assert.True(t, Valid(id), id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequence(t *testing.T) {
	gen := Sequence("cat")
	assert.Equal(t, "cat-1", gen.New())
	assert.Equal(t, "cat-2", gen.New())

	other := Sequence("menu")
	assert.Equal(t, "menu-1", other.New())
}

func TestSequenceConcurrent(t *testing.T) {
	gen := Sequence("x")
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.New()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"abc", true},
		{"a.b-c_d", true},
		{"0f3e", true},
		{"", false},
		{"_abc", false},
		{"-abc", false},
		{"has space", false},
		{"0123456789012345678901234567890123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.id))
		})
	}
}
