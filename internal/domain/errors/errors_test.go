package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetails_KeepsErrorKind(t *testing.T) {
	detailed := ErrNotFound.WithDetails("no vendor profile for this account")

	assert.True(t, stderrors.Is(detailed, ErrNotFound))
	assert.False(t, stderrors.Is(detailed, ErrForbidden))
	assert.Equal(t, "no vendor profile for this account", detailed.Details())

	// The predefined error itself stays detail-free.
	assert.Empty(t, ErrNotFound.Details())
}

func TestBaseError_WrapMessage_KeepsErrorKind(t *testing.T) {
	wrapped := ErrUserAlreadyExists.WrapMessage("email already exists")

	assert.True(t, stderrors.Is(wrapped, ErrUserAlreadyExists))

	var appErr AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.ErrorCode())
}

func TestBaseError_Is_DistinguishesKinds(t *testing.T) {
	assert.False(t, stderrors.Is(ErrInvalidTransition, ErrProfileLocked))
	assert.False(t, stderrors.Is(ErrInsufficientBalance.WithDetails("short by 20"), ErrVendorNotApproved))
}
