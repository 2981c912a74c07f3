// Package config loads seqkit tool configuration.
//
// It uses Viper to read a YAML file and environment variables, and godotenv
// to pick up a .env file first. Files are searched in the usual places for
// a service (./cmd/<name>/config.yml, ./config/config.yml, ./config.yml)
// unless WithConfigFile names one.
//
// Environment variables override file values. They carry the service name
// as prefix with underscore-separated paths, so for seqstat
// SEQSTAT_LIMITS_MAX_BUFFER sets limits.max_buffer.
//
// # Usage
//
//	cfg, err := config.Load("seqstat")
//	logger.Init(cfg.Logging)
//	ctx = cfg.Limits.Context(ctx)
package config
