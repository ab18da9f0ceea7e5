// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Struct fields are tagged with `env` names and defaults; parsing is
// delegated to github.com/caarlos0/env. Each configuration type is loaded
// once per process and cached.
package config
