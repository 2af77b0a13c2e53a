// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - The default .env file is loaded on first use when present; LoadEnv loads
//     additional files explicitly.
//   - Load parses the environment into any struct annotated with env tags.
//   - Each configuration type is parsed once and cached for the lifetime of the
//     process; ForceReload and ResetCache drop cached copies.
//
// # Usage
//
//	type ValidatorConfig struct {
//	    Mode     string `env:"VALIDATOR_MODE" envDefault:"burst"`
//	    Language string `env:"VALIDATOR_LANGUAGE" envDefault:"en"`
//	}
//
//	var cfg ValidatorConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// Sentinel errors can be compared with errors.Is:
//
//   - ErrParsingConfig  – env vars could not be parsed into the struct.
//   - ErrNilPointer     – nil pointer passed to Load or MustLoad.
//   - ErrLoadingEnvFile – a file passed to LoadEnv could not be read.
//
// A failed parse is not cached, so a later Load retries.
package config
