package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/sharelink/internal/flagx"
)

// Flags owned by this package.
var ownFlags = []string{"-a", "-t", "-d", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server origin, e.g. http://localhost:8080
//	-t int      metadata request timeout in seconds, 0 for none
//	-d string   download directory
//	-l string   log level
//
// Only the flags listed above are picked out of args, so subcommands and
// their arguments pass through untouched.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerOrigin, "a", cfg.ServerOrigin, "server origin")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}

// Rest returns args with every configuration flag removed, leaving the
// subcommand and its operands.
func Rest(args []string) []string {
	_, rest := flagx.Partition(args, append(append([]string{}, ownFlags...), flagx.ConfigFlags...))
	return rest
}
