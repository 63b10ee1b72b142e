// Package config defines the application configuration structure and loads it
// from environment variables (TASKDECK_ prefix) and an optional config file.
// Configuration is loaded exactly once at startup; components receive the
// parts they need as constructor arguments.
package config
