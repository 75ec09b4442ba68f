package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("passes DomainError through", func(t *testing.T) {
		err := NewForbidden("Forbidden")
		de := ToDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
		assert.Equal(t, "Forbidden", de.Message)
	})

	t.Run("maps fiber errors", func(t *testing.T) {
		de := ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
		assert.Equal(t, "invalid payload", de.Message)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		de := ToDomainError(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.Equal(t, "internal server error", de.Message, "internal details never leak to callers")
	})
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewInternalError(cause)
	assert.True(t, errors.Is(err, cause))
}
