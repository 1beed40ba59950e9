package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Run("rejects_unknown_level", func(t *testing.T) {
		_, err := NewLogger("json", "notalevel")
		require.Error(t, err)
	})

	t.Run("level_none_is_noop", func(t *testing.T) {
		l, err := NewLogger("json", "none")
		require.NoError(t, err)
		require.NotNil(t, l)
		l.Info("dropped")
	})

	t.Run("builds_text_and_json", func(t *testing.T) {
		for _, format := range []string{"text", "json"} {
			l, err := NewLogger(format, "info")
			require.NoError(t, err)
			require.NotNil(t, l)
		}
	})
}

func TestObserverLogger(t *testing.T) {
	l, logs := NewObserverLogger("debug")

	l.With(zap.String("listing_id", "listing-1")).Debug("skipping listing without location")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "skipping listing without location", entries[0].Message)
	require.Equal(t, "listing-1", entries[0].ContextMap()["listing_id"])
}
