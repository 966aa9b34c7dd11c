package web3bio

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorIs(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &APIError{Endpoint: "profile", Message: MsgNotFound})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrNotExist)

	custom := &APIError{Message: "rate limited by upstream"}
	assert.Equal(t, "rate limited by upstream", custom.Error())
	assert.NotErrorIs(t, custom, ErrUnknown)
}

func TestHTTPErrorMessage(t *testing.T) {
	assert.EqualError(t, &HTTPError{Status: 503, Body: "down"}, "API error: 503")
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(context.Canceled))
	assert.True(t, IsCanceled(fmt.Errorf("get: %w", context.Canceled)))
	assert.False(t, IsCanceled(context.DeadlineExceeded))
	assert.False(t, IsCanceled(errors.New("boom")))
}

func TestDefaultQueryOptions(t *testing.T) {
	opts := DefaultQueryOptions()
	assert.True(t, opts.Enabled)
	assert.Empty(t, opts.APIKey)
}
