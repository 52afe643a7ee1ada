package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutConfigFile(t *testing.T) {
	config, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "development", config.Environment)
	require.True(t, config.StrictAttributes)
	require.True(t, config.DirectAttributes)
	require.True(t, config.Linebreaks)
	require.True(t, config.StripLinebreaks)
	require.False(t, config.CloseOpenTags)
}
