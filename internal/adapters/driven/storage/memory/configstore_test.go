package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("zoom.step", 1.2))
	require.NoError(t, store.Set("zoom.step", 1.5))

	val, ok := store.Get("zoom.step")
	assert.True(t, ok)
	assert.Equal(t, 1.5, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("string", "poppler")
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(43))
	_ = store.Set("float", 2.5)
	_ = store.Set("bool", true)

	tests := []struct {
		key        string
		wantString string
		wantInt    int
		wantFloat  float64
		wantBool   bool
	}{
		{key: "string", wantString: "poppler"},
		{key: "int", wantInt: 42, wantFloat: 42},
		{key: "int64", wantInt: 43, wantFloat: 43},
		{key: "float", wantInt: 2, wantFloat: 2.5},
		{key: "bool", wantBool: true},
		{key: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.wantString, store.GetString(tt.key))
			assert.Equal(t, tt.wantInt, store.GetInt(tt.key))
			assert.InDelta(t, tt.wantFloat, store.GetFloat(tt.key), 1e-9)
			assert.Equal(t, tt.wantBool, store.GetBool(tt.key))
		})
	}
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("watch.enabled", false)

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())

	val, ok := store.Get("watch.enabled")
	assert.True(t, ok)
	assert.Equal(t, false, val)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key-%d", id), id)
		}(i)
		go func(id int) {
			defer wg.Done()
			_ = store.GetFloat(fmt.Sprintf("key-%d", id))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key-%d", i)))
	}
}
