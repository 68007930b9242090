package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/beornf/linstor-api-go/internal/paths"
	"github.com/beornf/linstor-api-go/pkg/linstor"
)

// ControllersEnv overrides the controllers of the config file with a comma
// separated host list.
const ControllersEnv = "LS_CONTROLLERS"

// DefaultController is used when neither the file nor the environment names
// a controller.
const DefaultController = "linstor://localhost"

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the default config file.
// If the config file does not exist, it returns an empty Config (no error).
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads and parses a config file at the given path, expands
// ${ENV_VAR} placeholders and applies the LS_CONTROLLERS override.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expandConfigEnvVars(cfg)
	if hosts := strings.TrimSpace(os.Getenv(ControllersEnv)); hosts != "" {
		cfg.Controllers = linstor.ControllerURIList(hosts)
	}
	return cfg, nil
}

// ControllerURIs returns the configured controllers, or DefaultController
// when none are set.
func (c *Config) ControllerURIs() []string {
	var uris []string
	for _, u := range c.Controllers {
		if u = strings.TrimSpace(u); u != "" {
			uris = append(uris, u)
		}
	}
	if len(uris) == 0 {
		return []string{DefaultController}
	}
	return uris
}

func expandConfigEnvVars(cfg *Config) {
	for i := range cfg.Controllers {
		cfg.Controllers[i] = expandEnvVars(cfg.Controllers[i])
	}
	cfg.Timeout = expandEnvVars(cfg.Timeout)
	cfg.Username = expandEnvVars(cfg.Username)
	cfg.Password = expandEnvVars(cfg.Password)
	cfg.LogLevel = expandEnvVars(cfg.LogLevel)
	for k, v := range cfg.Headers {
		cfg.Headers[k] = expandEnvVars(v)
	}
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment variable.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match // leave unresolved vars as-is
	})
}
