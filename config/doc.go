// Package config loads logz settings from flags, LOGZ_* environment
// variables, an optional logz.yaml and .env files.
package config
