package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/dime/logger"
	"github.com/kbukum/dime/validation"
)

// DefaultInjectTimeout is how long an injection point waits for a mount
// before logging a warning.
const DefaultInjectTimeout = 5 * time.Second

// Settings holds runtime settings for a Dime instance.
type Settings struct {
	// InjectTimeout is the delay before a pending injection point warns that
	// no mount happened. Zero disables the warning.
	InjectTimeout time.Duration `yaml:"inject_timeout" mapstructure:"-" validate:"gte=0"`
	Logging       logger.Config `yaml:"logging" mapstructure:"logging"`
}

// DefaultSettings returns settings with defaults applied.
func DefaultSettings() Settings {
	s := Settings{InjectTimeout: DefaultInjectTimeout}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	s.Logging.ApplyDefaults()
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := validation.Validate(s); err != nil {
		return err
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// maxTimeoutMillis is the largest millisecond count a time.Duration holds.
const maxTimeoutMillis = math.MaxInt64 / int64(time.Millisecond)

// ParseTimeout accepts a bare integer as milliseconds or a Go duration string.
// Negative values and millisecond counts that overflow a time.Duration are
// rejected.
func ParseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultInjectTimeout, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if ms < 0 || ms > maxTimeoutMillis {
			return 0, fmt.Errorf("invalid inject timeout %q: must be between 0 and %d milliseconds", raw, maxTimeoutMillis)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid inject timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid inject timeout %q: must not be negative", raw)
	}
	return d, nil
}
