package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/prefkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Only the flags registered here are kept from os.Args (see flagx.FilterArgs),
// so -c/-config and anything else is ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-u", "-q", "-o", "-f", "-b", "-s", "-l", "-j", "-e", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "directory of ledger files")
	fs.StringVar(&cfg.UsersFile, "u", cfg.UsersFile, "accounts file (json backend)")
	fs.StringVar(&cfg.QuestionsFile, "q", cfg.QuestionsFile, "question catalog (csv)")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "export directory (default: data dir)")
	fs.StringVar(&cfg.ExportFormat, "f", cfg.ExportFormat, "export format: csv or xlsx")
	fs.StringVar(&cfg.AccountsBackend, "b", cfg.AccountsBackend, "accounts backend: json or sqlite")
	fs.StringVar(&cfg.AccountsDSN, "s", cfg.AccountsDSN, "sqlite DSN (sqlite backend)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "j", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 endpoint for export upload")
	fs.StringVar(&cfg.S3Bucket, "k", cfg.S3Bucket, "S3 bucket for export upload (empty disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
