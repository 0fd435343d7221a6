package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedPayload struct {
	Title string `validate:"required,max=10"`
	Parts int    `validate:"required,gte=1"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(validatedPayload{Title: "latte", Parts: 1}))
}

func TestValidateStruct_Failures(t *testing.T) {
	t.Run("missing required field", func(t *testing.T) {
		err := ValidateStruct(validatedPayload{Parts: 1})

		require.Error(t, err)
		require.True(t, IsValidationError(err))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.Fields["Title"], "required")
	})

	t.Run("max exceeded", func(t *testing.T) {
		err := ValidateStruct(validatedPayload{Title: "a very long drink name", Parts: 1})

		require.Error(t, err)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.Fields["Title"], "at most 10")
	})

	t.Run("gte violated", func(t *testing.T) {
		err := ValidateStruct(validatedPayload{Title: "latte", Parts: -1})

		require.Error(t, err)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.NotEmpty(t, vErr.Fields["Parts"])
	})
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(errors.New("plain error")))
	assert.False(t, IsValidationError(nil))
}
