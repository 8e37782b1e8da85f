// Package around parses the around CLI configuration and runs its commands
// against the content and auth services.
package around

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/5hraddha/around/internal/around/gateway"
	entrypoint "github.com/5hraddha/around/internal/platform/cmd"
	"github.com/5hraddha/around/internal/platform/config"
)

// Config holds around command configuration.
type Config struct {
	ContentBaseURL       string        `env:"AROUND_CONTENT_BASE_URL"`
	ContentAuthorization string        `env:"AROUND_CONTENT_AUTHORIZATION"`
	AuthBaseURL          string        `env:"AROUND_AUTH_BASE_URL" envDefault:"https://register.nomoreparties.co"`
	StatePath            string        `env:"AROUND_STATE_PATH" envDefault:"around.db"`
	HTTPTimeout          time.Duration `env:"AROUND_HTTP_TIMEOUT" envDefault:"15s"`
	RequestsPerSecond    float64       `env:"AROUND_REQUESTS_PER_SECOND" envDefault:"0"`
	LogLevel             string        `env:"AROUND_LOG_LEVEL" envDefault:"warn"`
	LogFormat            string        `env:"AROUND_LOG_FORMAT" envDefault:"text"`
	Locale               string        `env:"AROUND_LOCALE" envDefault:"en-US"`

	Command string
	Args    []string
}

// ParseConfig loads .env, the environment and flags into Config. The first
// positional argument is the command.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.Usage = func() { usage(fs) }

	if err := config.LoadDotEnv(entrypoint.DefaultDotEnvPath); err != nil {
		return Config{}, err
	}
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ContentBaseURL, "content-url", cfg.ContentBaseURL, "The content service base URL")
	fs.StringVar(&cfg.ContentAuthorization, "content-auth", cfg.ContentAuthorization, "The content service authorization header")
	fs.StringVar(&cfg.AuthBaseURL, "auth-url", cfg.AuthBaseURL, "The auth service base URL")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "The SQLite file holding the stored token")
	fs.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "The per-request HTTP timeout")
	fs.Float64Var(&cfg.RequestsPerSecond, "rps", cfg.RequestsPerSecond, "Client-side request pacing (0 disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "The log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "The log format (text or json)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "The message locale")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, fmt.Errorf("command is required")
	}
	cfg.Command = strings.TrimSpace(rest[0])
	cfg.Args = rest[1:]
	if strings.TrimSpace(cfg.AuthBaseURL) == "" {
		cfg.AuthBaseURL = gateway.DefaultAuthBaseURL
	}
	return cfg, nil
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "usage: around [flags] <command> [args]")
	fmt.Fprintln(out, "\ncommands:")
	for _, c := range commandTable {
		fmt.Fprintf(out, "  %-28s %s\n", c.usage, c.summary)
	}
	fmt.Fprintln(out, "\nflags:")
	fs.PrintDefaults()
}
