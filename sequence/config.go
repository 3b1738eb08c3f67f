package sequence

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/fseq/internal/options"
)

// Config holds the construction settings of a new Sequence.
type Config struct {
	clock         func() time.Time
	created       time.Time
	hasCreated    bool
	versionMinor  uint8
	reserveFrames int
}

// Option configures a Sequence created by New.
type Option = options.Option[*Config]

func newConfig() *Config {
	return &Config{clock: time.Now}
}

// createdAt returns the creation timestamp at microsecond precision, the
// resolution of the header timestamp field.
func (c *Config) createdAt() time.Time {
	t := c.created
	if !c.hasCreated {
		t = c.clock()
	}

	return t.Truncate(time.Microsecond)
}

// WithClock sets the clock used to stamp the creation time. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return options.New(func(c *Config) error {
		if clock == nil {
			return errors.New("nil clock")
		}
		c.clock = clock

		return nil
	})
}

// WithCreated sets a fixed creation time. It takes precedence over WithClock.
func WithCreated(created time.Time) Option {
	return options.NoError(func(c *Config) {
		c.created = created
		c.hasCreated = true
	})
}

// WithVersionMinor sets the minor version written to the header.
func WithVersionMinor(minor uint8) Option {
	return options.NoError(func(c *Config) {
		c.versionMinor = minor
	})
}

// WithReservedFrames pre-allocates frame storage for n frames.
func WithReservedFrames(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("negative frame reservation: %d", n)
		}
		c.reserveFrames = n

		return nil
	})
}
