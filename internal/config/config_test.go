package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/mines"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	p, err := c.Board.Params()
	require.NoError(t, err)
	assert.Equal(t, mines.DefaultParams, p)
}

func TestReadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"mode": "development",
		"addr": ":9090",
		"board": {"width": 16, "height": 16, "mine_count": 40, "reveal": "flood"},
		"session": {"idle_timeout": "15m", "token_lifetime": 3600000000000}
	}`)

	c := Default()
	require.NoError(t, ReadConfig(path, &c))
	require.NoError(t, c.Validate())

	assert.True(t, c.Development())
	assert.Equal(t, ":9090", c.Addr)
	assert.Equal(t, 15*time.Minute, c.Session.IdleTimeout.Duration)
	assert.Equal(t, time.Hour, c.Session.TokenLifetime.Duration)
	assert.Equal(t, time.Minute, c.Session.SweepInterval.Duration)
	assert.Equal(t, "info", c.Log.Level)

	p, err := c.Board.Params()
	require.NoError(t, err)
	assert.Equal(t, mines.Params{Width: 16, Height: 16, MineCount: 40, Reveal: mines.RevealFloodFill}, p)
	assert.Equal(t, DefaultMaxCells, c.Board.MaxCells)
}

func TestReadConfigErrors(t *testing.T) {
	c := Default()
	assert.Error(t, ReadConfig(filepath.Join(t.TempDir(), "missing.json"), &c))
	assert.Error(t, ReadConfig(writeConfig(t, `{"session": {"idle_timeout": true}}`), &c))

	c = Default()
	c.Board.MineCount = c.Board.Width * c.Board.Height
	assert.ErrorIs(t, c.Validate(), mines.ErrInvalidConfiguration)

	c = Default()
	c.Board.MaxCells = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.Board.MaxCells = c.Board.Width*c.Board.Height - 1
	assert.ErrorIs(t, c.Validate(), mines.ErrInvalidConfiguration)

	c = Default()
	c.Board.Reveal = "sideways"
	assert.Error(t, c.Validate())

	c = Default()
	c.Log.Level = "loud"
	assert.Error(t, c.Validate())
}

func TestDurationJSON(t *testing.T) {
	b, err := json.Marshal(Duration{90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestSessionSecret(t *testing.T) {
	t.Setenv("MINEFIELD_SESSION_SECRET", "")

	c := Default()
	_, err := c.SessionSecret()
	assert.Error(t, err)

	c.Session.Secret = "from config"
	secret, err := c.SessionSecret()
	require.NoError(t, err)
	assert.Equal(t, "from config", string(secret))

	path := writeConfig(t, "from file\n")
	t.Setenv("MINEFIELD_SESSION_SECRET_FILE", path)
	secret, err = c.SessionSecret()
	require.NoError(t, err)
	assert.Equal(t, "from file", string(secret))

	t.Setenv("MINEFIELD_SESSION_SECRET", "from env")
	secret, err = c.SessionSecret()
	require.NoError(t, err)
	assert.Equal(t, "from env", string(secret))
}

func TestSessionSecretDevelopment(t *testing.T) {
	t.Setenv("MINEFIELD_SESSION_SECRET", "")
	c := Default()
	c.Mode = "development"
	secret, err := c.SessionSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 32)
}

func TestCookiesToken(t *testing.T) {
	cookies := NewCookies(Default())
	assert.True(t, cookies.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies.SameSite)

	w := httptest.NewRecorder()
	cookies.Refresh(w, "abc", time.Hour)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	token, ok := cookies.Token(r)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	r.Header.Set("Authorization", "Bearer xyz")
	token, ok = cookies.Token(r)
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	r.Header.Set("Authorization", "Basic xyz")
	_, ok = cookies.Token(r)
	assert.False(t, ok)

	_, ok = cookies.Token(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
