package validator

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atl08-heightmap/internal/pkg/errors"
)

type sample struct {
	Column string  `validate:"required,column"`
	Radius float64 `validate:"gte=0"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Column: "h_can", Radius: 10}))

	err := ValidateRequest(sample{Column: "h_can; DROP TABLE x", Radius: -1})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "INVALID_REQUEST", appErr.Code)
	assert.Equal(t, "column", appErr.Details["Column"])
	assert.Equal(t, "gte", appErr.Details["Radius"])
	assert.Empty(t, errors.ErrInvalidRequest.Details)
}
