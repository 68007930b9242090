package config

// Config is the client configuration file.
type Config struct {
	// Controllers lists controller URIs or bare hosts, tried in order.
	Controllers []string `toml:"controllers"`

	// Timeout is a Go duration bounding dial and response waits.
	Timeout   string `toml:"timeout"`
	KeepAlive bool   `toml:"keep_alive"`

	Username      string `toml:"username"`
	Password      string `toml:"password"`
	AllowInsecure bool   `toml:"allow_insecure"`

	// Curl prints curl command lines instead of contacting the controller.
	Curl bool `toml:"curl"`

	LogLevel string            `toml:"log_level"`
	Headers  map[string]string `toml:"headers"`
}
