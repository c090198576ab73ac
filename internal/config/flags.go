package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/sharkbite/internal/flagx"
)

// parseFlags applies the short command-line flags:
//
//	-d string   store driver (sqlite, postgres)
//	-s string   store DSN
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//	-o string   export directory
//	-b string   export bucket; enables the S3 sink
//	-z string   IANA timezone for due dates
//	-p string   active subject policy (clear-if-absent, keep)
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-l", "-f", "-o", "-b", "-z", "-p"})

	fs := flag.NewFlagSet("sharkbite", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreDriver, "d", cfg.StoreDriver, "store driver")
	fs.StringVar(&cfg.StoreDSN, "s", cfg.StoreDSN, "store DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "export bucket")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "timezone")
	fs.StringVar(&cfg.ActiveSubjectPolicy, "p", cfg.ActiveSubjectPolicy, "active subject policy")

	return fs.Parse(args)
}
