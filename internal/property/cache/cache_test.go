package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/tracecheck/internal/property"
	"github.com/awmpietro/tracecheck/internal/temporal"
)

func trivialProperty() *property.Property {
	return &property.Property{Name: "t", Formula: temporal.True[property.State]()}
}

func TestInMemory_GetOrCompute_DeduplicatesConcurrentSameKey(t *testing.T) {
	c := NewInMemory(16)
	var calls atomic.Int32

	fn := func() (*property.Property, error) {
		calls.Add(1)
		time.Sleep(30 * time.Millisecond)
		return trivialProperty(), nil
	}

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrCompute("same-key", fn)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestInMemory_GetOrCompute_ErrorIsNotCached(t *testing.T) {
	c := NewInMemory(16)
	var calls atomic.Int32

	_, err := c.GetOrCompute("k", func() (*property.Property, error) {
		calls.Add(1)
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	_, err = c.GetOrCompute("k", func() (*property.Property, error) {
		calls.Add(1)
		return trivialProperty(), nil
	})
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load(), "error should not be cached")
}

func TestInMemory_GetOrCompute_PanicDoesNotBlockWaiters(t *testing.T) {
	c := NewInMemory(16)
	var calls atomic.Int32

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrCompute("panic-key", func() (*property.Property, error) {
				calls.Add(1)
				time.Sleep(50 * time.Millisecond)
				panic("boom")
			})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.Error(t, err, "expected panic converted into error")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestInMemory_RespectsMaxItems(t *testing.T) {
	c := NewInMemory(1)

	_, err := c.GetOrCompute("a", func() (*property.Property, error) { return trivialProperty(), nil })
	require.NoError(t, err)
	_, err = c.GetOrCompute("b", func() (*property.Property, error) { return trivialProperty(), nil })
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
}

func TestKey_IsStable(t *testing.T) {
	assert.Equal(t, Key([]byte(`{"op":"true"}`)), Key([]byte(`{"op":"true"}`)))
	assert.NotEqual(t, Key([]byte(`{"op":"true"}`)), Key([]byte(`{"op":"false"}`)))
	assert.Len(t, Key(nil), 64)
}
