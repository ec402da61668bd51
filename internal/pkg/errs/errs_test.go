package errs_test

import (
	"errors"
	"testing"

	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	})
}

func TestInvalidStateError(t *testing.T) {
	t.Run("NewInvalidStateError", func(t *testing.T) {
		err := errs.NewInvalidStateError("assignment", "already processed")

		assert.Equal(t, "invalid state: assignment: already processed", err.Error())
		assert.True(t, errors.Is(err, errs.ErrInvalidState))
	})

	t.Run("NewInvalidStateErrorWithCause", func(t *testing.T) {
		cause := errors.New("status is accepted")
		err := errs.NewInvalidStateErrorWithCause("assignment", "not pending", cause)

		assert.Equal(t, "invalid state: assignment: not pending (cause: status is accepted)", err.Error())
		assert.Equal(t, errs.ErrInvalidState, err.Unwrap())
	})
}

func TestNoCandidatesError(t *testing.T) {
	t.Run("NewNoCandidatesError", func(t *testing.T) {
		err := errs.NewNoCandidatesError("no couriers within radius")

		assert.Equal(t, "no candidates: no couriers within radius", err.Error())
		assert.True(t, errors.Is(err, errs.ErrNoCandidates))
	})

	t.Run("NewNoCandidatesErrorWithCause", func(t *testing.T) {
		cause := errors.New("all coordinates unparsable")
		err := errs.NewNoCandidatesErrorWithCause("no orders with coordinates", cause)

		assert.Equal(t, "no candidates: no orders with coordinates (cause: all coordinates unparsable)", err.Error())
		assert.Equal(t, errs.ErrNoCandidates, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("radius")

		assert.Equal(t, "value is invalid: radius", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be positive")
		err := errs.NewValueIsInvalidErrorWithCause("radius", cause)

		assert.Equal(t, "value is invalid: radius (cause: must be positive)", err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("courierId")

	assert.Equal(t, "value is required: courierId", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats_bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 150, -90, 90)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, "value is invalid: 150 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitizes_newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}
