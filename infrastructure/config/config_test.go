package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"auto_swiper/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.DefaultWaitTime)
	assert.Equal(t, 200, cfg.MaxLikes)
	assert.InDelta(t, 0.5, cfg.Confidence, 1e-9)
	assert.InDelta(t, 1.0, cfg.Scale, 1e-9)
	assert.True(t, cfg.CommentEnabled)
	assert.Equal(t, 3, cfg.MaxConsecutiveMisses)
	assert.Equal(t, 0, cfg.Display)
	assert.Equal(t, "jokes.txt", cfg.MessagesFile)
	assert.Equal(t, DefaultPuns, cfg.PunArray)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auto-swiper.yaml")
	content := `
default_wait_time_secs: 1.5
max_likes: 5
confidence: 0.7
comment_enabled: false
pun_array:
  - "only pun"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.DefaultWaitTime)
	assert.Equal(t, 5, cfg.MaxLikes)
	assert.InDelta(t, 0.7, cfg.Confidence, 1e-9)
	assert.False(t, cfg.CommentEnabled)
	assert.Equal(t, []string{"only pun"}, cfg.PunArray)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	var cfgErr *entities.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative max_likes":    "max_likes: -1\n",
		"confidence too high":   "confidence: 1.5\n",
		"confidence zero":       "confidence: 0\n",
		"non-positive scale":    "scale: 0\n",
		"zero miss threshold":   "max_consecutive_misses: 0\n",
		"negative poll retries": "max_poll_retries: -2\n",
		"negative display":      "display: -1\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "auto-swiper.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := Load(path)

			require.Error(t, err)
			var cfgErr *entities.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
