// Package config loads runtime configuration for PrefKeeper.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   ledger directory (user_data)
//	-u string   accounts file (users.json)
//	-q string   question catalog (questions.csv)
//	-o string   export directory (defaults to -d)
//	-f string   export format, csv or xlsx
//	-b string   accounts backend, json or sqlite
//	-s string   sqlite DSN (accounts.db)
//	-l string   log level
//	-j string   log format, text or json
//	-e string   S3 endpoint
//	-k string   S3 bucket; uploads are off while empty
//
// # JSON schema
//
//	{
//	  "data_dir": "user_data",
//	  "users_file": "users.json",
//	  "questions_file": "questions.csv",
//	  "export_format": "xlsx",
//	  "accounts_backend": "sqlite",
//	  "accounts_dsn": "accounts.db",
//	  "s3_bucket": "prefs",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
