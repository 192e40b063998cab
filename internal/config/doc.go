// Package config loads ghostie settings and resolves the fixed on-disk layout.
//
// Settings live in an optional, human-edited settings.toml under the config
// directory (~/.ghostie unless GHOSTIE_HOME is set). Load applies defaults,
// expands paths, and validates the result; callers construct a Config once at
// process start and pass it to every component that needs it.
package config
