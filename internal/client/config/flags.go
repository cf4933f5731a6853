package config

import (
	"flag"
	"os"
	"time"

	"github.com/vozativa/vozativa/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    base URL of the Voz Ativa API (default from Config)
//	-t int       request timeout in seconds (default from Config)
//	-ui string   frontend: tui, plain, or auto
//
// Only these flags are parsed; os.Args is filtered via flagx.FilterArgs so
// flags belonging to other components are left alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-ui"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the Voz Ativa API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "frontend: tui, plain, or auto")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
