package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wizzomafizzo/tgsms/internal/logging"
)

func TestNewTestContextCapturesOutput(t *testing.T) {
	t.Parallel()

	ctx, getLogs := NewTestContext(t)
	logging.Get(ctx).Debug().Msg("captured")

	assert.Contains(t, getLogs(), "captured")
	assert.Contains(t, getLogs(), "test-session")
}
