package errs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/meals/internal/service/errs"
	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := errs.Validation("item %d: quantity must be positive", 2)

	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.NotErrorIs(t, err, errs.ErrStorage)
	assert.Equal(t, "validation error: item 2: quantity must be positive", err.Error())
}

func TestStorage(t *testing.T) {
	err := errs.Storage("insert order", context.DeadlineExceeded)

	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "insert order")
}

func TestStorage_Nil(t *testing.T) {
	assert.NoError(t, errs.Storage("noop", nil))
}

func TestStorage_NotValidation(t *testing.T) {
	err := errs.Storage("query", errors.New("connection refused"))

	assert.False(t, errors.Is(err, errs.ErrValidation))
}
