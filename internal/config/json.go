package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/prefkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Keys missing
// from the file keep the value the Config already had.
type JsonConfig struct {
	DataDir             string `json:"data_dir"`
	UsersFile           string `json:"users_file"`
	QuestionsFile       string `json:"questions_file"`
	ExportDir           string `json:"export_dir"`
	AggregateExportName string `json:"aggregate_export_name"`
	ExportFormat        string `json:"export_format"`
	AccountsBackend     string `json:"accounts_backend"`
	AccountsDSN         string `json:"accounts_dsn"`
	LogLevel            string `json:"log_level"`
	LogFormat           string `json:"log_format"`
	S3Bucket            string `json:"s3_bucket"`
	S3Region            string `json:"s3_region"`
	S3BaseEndpoint      string `json:"s3_base_endpoint"`
	S3AccessKey         string `json:"s3_access_key"`
	S3SecretKey         string `json:"s3_secret_key"`
}

// parseJson overlays cfg with the file named by -c or -config.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig(*cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	*cfg = Config(jc)
}
