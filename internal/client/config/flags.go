package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/shopadmin/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags owned by
// this package are parsed; see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-p", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend REST API")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local SQLite file")
	interval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session re-validation interval (in seconds, 0 disables)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "rows per page on list screens")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text, json or zerolog")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionCheckInterval = time.Duration(*interval) * time.Second
}
