package guard_test

import (
	"errors"
	"sync"
	"testing"

	"logistics/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("parcel not constructed")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInDomainObject(t *testing.T) {
	var errWeightNotConstructed = errors.New("Weight must be created via NewWeight")

	type weight struct {
		kg    float64
		guard guard.ConstructorGuard
	}

	newWeight := func(kg float64) (weight, error) {
		if kg <= 0 {
			return weight{}, errors.New("weight must be positive")
		}
		return weight{kg: kg, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_path_validates", func(t *testing.T) {
		w, err := newWeight(2.5)

		require.NoError(t, err)
		require.NoError(t, w.guard.Validate(errWeightNotConstructed))
	})

	t.Run("literal_path_fails", func(t *testing.T) {
		w := weight{kg: 2.5}

		require.ErrorIs(t, w.guard.Validate(errWeightNotConstructed), errWeightNotConstructed)
	})

	t.Run("constructor_rejects_invalid_input", func(t *testing.T) {
		_, err := newWeight(0)

		require.Error(t, err)
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				assert.NoError(t, g.Validate(validationError))
			}
		}()
	}
	wg.Wait()
}
