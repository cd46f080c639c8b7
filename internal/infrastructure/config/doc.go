// Package config loads and validates the storeapp server configuration.
//
// Configuration is layered: hardcoded defaults, then the YAML file, then
// STOREAPP_* environment variable overrides. Validation runs last and
// refuses to start with a missing or weak token secret.
package config
