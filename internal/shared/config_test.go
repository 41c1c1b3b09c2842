package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_chat/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "k")
	c := shared.Load("")

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, 5000, c.SearchRadius)
	assert.Equal(t, "memory", c.SessionStore)
	assert.Equal(t, time.Hour, c.SessionTTL)
	assert.False(t, c.SpeechEnabled)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(f, []byte("GOOGLE_MAPS_API_KEY=from-file\nSPEECH_ENABLED=true\nSEARCH_RADIUS_METERS=1200\n"), 0o600))

	// registered with t.Setenv so the values loaded from the file are restored afterwards
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("SPEECH_ENABLED", "")
	t.Setenv("SEARCH_RADIUS_METERS", "")
	os.Unsetenv("GOOGLE_MAPS_API_KEY")
	os.Unsetenv("SPEECH_ENABLED")
	os.Unsetenv("SEARCH_RADIUS_METERS")

	c := shared.Load(f)
	assert.Equal(t, "from-file", c.MapsKey)
	assert.True(t, c.SpeechEnabled)
	assert.Equal(t, 1200, c.SearchRadius)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	c := shared.Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NotEmpty(t, c.HTTPAddr)
}

func TestLoad_NonPositiveTurnLimitFallsBack(t *testing.T) {
	for _, v := range []string{"0", "-3"} {
		t.Setenv("MAX_CONCURRENT_TURNS", v)
		c := shared.Load("")
		assert.Equal(t, 16, c.MaxConcurrentTurns, "MAX_CONCURRENT_TURNS=%s", v)
	}
	t.Setenv("MAX_CONCURRENT_TURNS", "4")
	assert.Equal(t, 4, shared.Load("").MaxConcurrentTurns)
}
