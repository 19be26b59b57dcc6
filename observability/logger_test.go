package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.True(t, logger.Core().Enabled(-1)) // -1 is zap's debug level
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLogger("shouty")
	require.Error(t, err)
}

func TestNewDevelopment(t *testing.T) {
	require.NotNil(t, NewDevelopment())
}
