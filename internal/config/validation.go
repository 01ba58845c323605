package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// MinDecodeSampleSize is the smallest sample that still holds one full UTF-8 sequence.
const MinDecodeSampleSize = 4

var validFormats = map[string]bool{"text": true, "json": true, "table": true}

var validLogFormats = map[string]bool{"text": true, "json": true}

// Validate checks config values for correctness.
// Every problem is reported, not only the first one.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Counter.DecodeSampleSize < MinDecodeSampleSize {
		result = multierror.Append(result, fmt.Errorf("counter.decode_sample_size must be >= %d", MinDecodeSampleSize))
	}
	if !validFormats[c.Counter.DefaultFormat] {
		result = multierror.Append(result, fmt.Errorf("counter.default_format must be one of text, json, table (got %q)", c.Counter.DefaultFormat))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("log.level: %w", err))
	}
	if !validLogFormats[c.Log.Format] {
		result = multierror.Append(result, fmt.Errorf("log.format must be one of text, json (got %q)", c.Log.Format))
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// ErrInvalidConfig marks validation failures.
var ErrInvalidConfig = errors.New("config validation failed")
