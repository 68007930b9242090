package config

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beornf/linstor-api-go/pkg/linstor"
)

// ClientOptions converts a validated config into client options. dryRun
// receives the curl lines when curl mode is enabled.
func (c *Config) ClientOptions(log logrus.FieldLogger, dryRun io.Writer) ([]linstor.Option, error) {
	opts := []linstor.Option{
		linstor.WithKeepAlive(c.KeepAlive),
		linstor.WithAllowInsecure(c.AllowInsecure),
		linstor.WithLogger(log),
	}
	if c.Timeout != "" {
		timeout, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		opts = append(opts, linstor.WithTimeout(timeout))
	}
	if c.Username != "" {
		opts = append(opts, linstor.WithCredentials(c.Username, c.Password))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, linstor.WithHeaders(c.Headers))
	}
	if c.Curl && dryRun != nil {
		opts = append(opts, linstor.WithDryRun(dryRun))
	}
	return opts, nil
}

// Level returns the configured log level, warn when unset.
func (c *Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.WarnLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}
