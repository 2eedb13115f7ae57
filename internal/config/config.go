package config

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

type LogConfig struct {
	Level      string `json:"level"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type BoardConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MineCount int    `json:"mine_count"`
	Reveal    string `json:"reveal"`
	Placement string `json:"placement"`
	// MaxCells caps width*height of any board a client asks for.
	MaxCells int `json:"max_cells"`
}

// DefaultMaxCells is the largest board a client may request by default.
const DefaultMaxCells = 1 << 16

func (b BoardConfig) Params() (mines.Params, error) {
	reveal, err := mines.ParseRevealMode(b.Reveal)
	if err != nil {
		return mines.Params{}, err
	}
	placement, err := mines.ParsePlacement(b.Placement)
	if err != nil {
		return mines.Params{}, err
	}
	p := mines.Params{
		Width:     b.Width,
		Height:    b.Height,
		MineCount: b.MineCount,
		Reveal:    reveal,
		Placement: placement,
	}
	if b.MaxCells <= 0 {
		return mines.Params{}, fmt.Errorf("board: max_cells must be positive, got %d", b.MaxCells)
	}
	if err := p.ValidateLimit(b.MaxCells); err != nil {
		return mines.Params{}, fmt.Errorf("board: %w", err)
	}
	return p, nil
}

type SessionConfig struct {
	Secret        string   `json:"secret"`
	SecretFile    string   `json:"secret_file"`
	TokenLifetime Duration `json:"token_lifetime"`
	IdleTimeout   Duration `json:"idle_timeout"`
	SweepInterval Duration `json:"sweep_interval"`
}

type Config struct {
	Mode           string        `json:"mode"`
	Addr           string        `json:"addr"`
	Domain         string        `json:"domain"`
	AllowedOrigins []string      `json:"allowed_origins"`
	Log            LogConfig     `json:"log"`
	Board          BoardConfig   `json:"board"`
	Session        SessionConfig `json:"session"`
}

func Default() Config {
	return Config{
		Mode: "production",
		Addr: ":8080",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Board: BoardConfig{
			Width:     mines.DefaultParams.Width,
			Height:    mines.DefaultParams.Height,
			MineCount: mines.DefaultParams.MineCount,
			Reveal:    mines.RevealSingle.String(),
			Placement: mines.PlaceAuto.String(),
			MaxCells:  DefaultMaxCells,
		},
		Session: SessionConfig{
			TokenLifetime: Duration{24 * time.Hour},
			IdleTimeout:   Duration{time.Hour},
			SweepInterval: Duration{time.Minute},
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"domain":                 c.Domain,
		"allowed_origins":        c.AllowedOrigins,
		"log_level":              c.Log.Level,
		"log_file":               c.Log.File,
		"board":                  fmt.Sprintf("%d:%d:%d", c.Board.Width, c.Board.Height, c.Board.MineCount),
		"board_reveal":           c.Board.Reveal,
		"board_placement":        c.Board.Placement,
		"board_max_cells":        c.Board.MaxCells,
		"session_secret_file":    c.Session.SecretFile,
		"session_token_lifetime": c.Session.TokenLifetime.String(),
		"session_idle_timeout":   c.Session.IdleTimeout.String(),
		"session_sweep_interval": c.Session.SweepInterval.String(),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) HttpCookieSameSite() http.SameSite {
	if c.Development() {
		return http.SameSiteNoneMode
	} else {
		return http.SameSiteStrictMode
	}
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is not set")
	}
	if _, err := c.Board.Params(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Session.TokenLifetime.Duration <= 0 {
		return errors.New("session token_lifetime must be positive")
	}
	if c.Session.IdleTimeout.Duration <= 0 || c.Session.SweepInterval.Duration <= 0 {
		return errors.New("session idle_timeout and sweep_interval must be positive")
	}
	return nil
}

// ReadConfig reads the JSON file at path on top of whatever config
// already holds.
func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// SessionSecret loads the token signing secret from, in order,
// MINEFIELD_SESSION_SECRET, MINEFIELD_SESSION_SECRET_FILE, the config
// itself and its secret_file. Development mode falls back to a random
// secret that lives as long as the process.
func (c Config) SessionSecret() ([]byte, error) {
	if secret, ok := os.LookupEnv("MINEFIELD_SESSION_SECRET"); ok && secret != "" {
		return []byte(secret), nil
	}

	secretFile, ok := os.LookupEnv("MINEFIELD_SESSION_SECRET_FILE")
	if !ok {
		if c.Session.Secret != "" {
			return []byte(c.Session.Secret), nil
		}
		secretFile = c.Session.SecretFile
	}

	if secretFile != "" {
		data, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read session secret file: %w", err)
		}
		return []byte(strings.TrimSpace(string(data))), nil
	}

	if c.Development() {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		return secret, nil
	}

	return nil, errors.New("no MINEFIELD_SESSION_SECRET or MINEFIELD_SESSION_SECRET_FILE env variable set and no secret configured")
}
