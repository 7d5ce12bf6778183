package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadbox/leadbox/pkg/validator"
)

func TestApplyCollectsAllViolations(t *testing.T) {
	err := validator.Apply(
		validator.Required("name", ""),
		validator.MaxLen("name", "abc", 100),
		validator.ValidEmail("email", "not-an-email"),
		validator.Required("message", ""),
	)
	require.Error(t, err)

	verrs := validator.ExtractValidationErrors(err)
	require.NotNil(t, verrs)
	assert.ElementsMatch(t, []string{"name", "email", "message"}, verrs.Fields())
	assert.True(t, verrs.Has("email"))
	assert.False(t, verrs.Has("phone"))
}

func TestApplyReturnsNilWhenValid(t *testing.T) {
	err := validator.Apply(
		validator.Required("name", "John Doe"),
		validator.MaxLen("name", "John Doe", 100),
		validator.ValidEmail("email", "john@example.com"),
	)
	assert.NoError(t, err)
}

func TestValidationErrorsByField(t *testing.T) {
	err := validator.Apply(
		validator.Required("email", ""),
		validator.ValidEmail("email", ""),
	)
	require.Error(t, err)

	byField := validator.ExtractValidationErrors(err).ByField()
	assert.Len(t, byField["email"], 2)
}

func TestSentinelClassification(t *testing.T) {
	err := validator.Apply(validator.Required("name", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)
	assert.ErrorIs(t, err, validator.ErrFieldRequired)
	assert.NotErrorIs(t, err, validator.ErrInvalidFormat)

	err = validator.Apply(validator.ValidEmail("email", "nope"))
	assert.ErrorIs(t, err, validator.ErrInvalidFormat)

	err = validator.Apply(validator.InListString("sortBy", "bad", []string{"name"}))
	assert.ErrorIs(t, err, validator.ErrInvalidValue)

	wrapped := fmt.Errorf("create submission: %w", validator.Apply(validator.Min("page", 0, 1)))
	assert.ErrorIs(t, wrapped, validator.ErrValidationFailed)
}

func TestIsValidationError(t *testing.T) {
	err := validator.Apply(validator.Required("name", ""))
	assert.True(t, validator.IsValidationError(err))
	assert.True(t, validator.IsValidationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, validator.IsValidationError(errors.New("other")))
	assert.False(t, validator.IsValidationError(nil))
}

func TestOptional(t *testing.T) {
	assert.NoError(t, validator.Apply(
		validator.Optional("", validator.ValidDateString("startDate", "")),
	))
	assert.Error(t, validator.Apply(
		validator.Optional("not-a-date", validator.ValidDateString("startDate", "not-a-date")),
	))
	assert.NoError(t, validator.Apply(
		validator.Optional("2024-05-01", validator.ValidDateString("startDate", "2024-05-01")),
	))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"john@example.com", "a@b.co", "first.last+tag@sub.domain.org"}
	invalid := []string{"", "plain", "@example.com", "a@b", "a@.com", "a@b..com", "a b@c.com"}

	for _, email := range valid {
		t.Run("valid "+email, func(t *testing.T) {
			assert.NoError(t, validator.Apply(validator.ValidEmail("email", email)))
		})
	}
	for _, email := range invalid {
		t.Run("invalid "+email, func(t *testing.T) {
			assert.Error(t, validator.Apply(validator.ValidEmail("email", email)))
		})
	}
}

func TestValidDateString(t *testing.T) {
	assert.NoError(t, validator.Apply(validator.ValidDateString("d", "2024-01-31")))
	assert.Error(t, validator.Apply(validator.ValidDateString("d", "2024-13-01")))
	assert.Error(t, validator.Apply(validator.ValidDateString("d", "31-01-2024")))
	assert.Error(t, validator.Apply(validator.ValidDateString("d", "2024-01-31T10:00:00Z")))
}

func TestNumericRules(t *testing.T) {
	assert.NoError(t, validator.Apply(validator.Min("page", 1, 1)))
	assert.Error(t, validator.Apply(validator.Min("page", 0, 1)))
	assert.NoError(t, validator.Apply(validator.Max("page", 5, 10)))
}

func TestInListString(t *testing.T) {
	allowed := []string{"createdAt", "name", "email"}
	assert.NoError(t, validator.Apply(validator.InListString("sortBy", "name", allowed)))

	err := validator.Apply(validator.InListString("sortBy", "invalid", allowed))
	require.Error(t, err)
	msgs := validator.ExtractValidationErrors(err).Get("sortBy")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "createdAt")
}
