// Package config loads runtime settings for dime.
//
// It uses Viper to merge defaults, an optional YAML file (dime.yml) and
// DIME_-prefixed environment variables, and godotenv to pick up a .env file.
//
// # Usage
//
//	settings, err := config.Load(config.WithConfigFile("dime.yml"))
//
// DIME_INJECT_TIMEOUT accepts milliseconds ("5000") or a duration ("5s").
package config
