package dbsession

import (
	"testing"
)

func TestGet(t *testing.T) {
	// ARRANGE
	values := []any{int64(1), "alice", nil}

	t.Run("value", func(t *testing.T) {
		// ACT
		result, err := Get[string](values, 1)

		// ASSERT
		assertErrorIsNil(t, err)
		wanted := "alice"
		got := result
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})

	t.Run("null", func(t *testing.T) {
		// ACT
		result, err := Get[int64](values, 2)

		// ASSERT
		assertErrorIsNil(t, err)
		wanted := int64(0)
		got := result
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		// ACT
		_, err := Get[string](values, 0)

		// ASSERT
		assertExpectedError(t, InvalidArgumentError{}, err)
	})

	t.Run("out of range", func(t *testing.T) {
		// ACT
		_, err := Get[string](values, 3)

		// ASSERT
		assertExpectedError(t, InvalidArgumentError{}, err)
	})
}
