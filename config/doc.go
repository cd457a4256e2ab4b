// Package config provides engine configuration loading and live reload.
//
// Configuration merges three layers, lowest priority first: built-in
// defaults, a config file (TOML, YAML, or JSON, chosen by extension), and
// CELLSTORM_* environment variables. A missing file is not an error; the
// remaining layers still apply. Watcher reloads the file on change,
// surviving the write-temp-then-rename saves editors perform.
package config
