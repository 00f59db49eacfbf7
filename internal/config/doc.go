// Package config loads the process runtime configuration (listen address,
// server timeouts, rate limits, logging and the location of the settings
// source) from YAML files, environment variables and CLI flags with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
//
// Category settings for the content pipeline live in package settings; this
// package only decides how the HTTP process runs.
package config
