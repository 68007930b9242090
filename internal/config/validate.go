package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beornf/linstor-api-go/pkg/linstor"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	for i, uri := range cfg.Controllers {
		if _, err := linstor.ParseEndpoint(uri); err != nil {
			errs = append(errs, fmt.Errorf("controllers[%d]: %w", i, err))
		}
	}

	if cfg.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("timeout: invalid duration %q: %w", cfg.Timeout, err))
		} else if timeout <= 0 {
			errs = append(errs, fmt.Errorf("timeout: must be > 0, got %q", cfg.Timeout))
		}
	}

	if cfg.LogLevel != "" {
		if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}

	if cfg.Password != "" && strings.TrimSpace(cfg.Username) == "" {
		errs = append(errs, errors.New("password: set username as well"))
	}

	for name := range cfg.Headers {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("headers: empty header name"))
		}
	}

	return errors.Join(errs...)
}
