package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendError(t *testing.T) {
	err := NewBackendError(MsgSignInFailed)
	assert.Equal(t, "sign-in failed", err.Error())
	assert.True(t, IsBackendError(err))

	wrapped := fmt.Errorf("screen submit: %w", err)
	assert.True(t, IsBackendError(wrapped))

	assert.False(t, IsBackendError(errors.New("sign-in failed")))
	assert.False(t, IsBackendError(nil))
}
