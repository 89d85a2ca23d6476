package config

import (
	"fmt"
	"path/filepath"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds runtime settings for PrefKeeper.
//
// Fields:
//   - DataDir: directory of the per-identity ledger files.
//   - UsersFile: account table used by the json backend.
//   - QuestionsFile: question catalog (CSV), seeded when missing.
//   - ExportDir: where export files are written; empty means DataDir.
//   - AggregateExportName: base name of the all-identities export.
//   - ExportFormat: csv or xlsx.
//   - AccountsBackend / AccountsDSN: json (UsersFile) or sqlite (AccountsDSN).
//   - LogLevel / LogFormat: see logging.New.
//   - S3*: optional upload of export files; disabled while S3Bucket is empty.
type Config struct {
	DataDir             string
	UsersFile           string
	QuestionsFile       string
	ExportDir           string
	AggregateExportName string
	ExportFormat        string
	AccountsBackend     string
	AccountsDSN         string
	LogLevel            string
	LogFormat           string
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
	S3AccessKey         string
	S3SecretKey         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "user_data"
	c.UsersFile = "users.json"
	c.QuestionsFile = "questions.csv"
	c.ExportDir = ""
	c.AggregateExportName = "all_preference_data"
	c.ExportFormat = "csv"
	c.AccountsBackend = BackendJSON
	c.AccountsDSN = "accounts.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.S3Region = "us-east-1"
}

// ExportDirOrDefault returns ExportDir, falling back to DataDir.
func (c *Config) ExportDirOrDefault() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	return c.DataDir
}

// S3Enabled reports whether exports should be uploaded.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

func (c *Config) Validate() error {
	switch c.AccountsBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown accounts backend %q", c.AccountsBackend)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if c.AggregateExportName == "" || filepath.Base(c.AggregateExportName) != c.AggregateExportName {
		return fmt.Errorf("invalid aggregate export name %q", c.AggregateExportName)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
