// Package config handles configuration management for myglob.
// It layers, from lowest to highest precedence, the embedded defaults,
// the user file under $XDG_CONFIG_HOME/myglob, a project file
// (.myglob.toml or .myglob.yaml) in the working directory, MYGLOB_*
// environment variables and command-line overrides.
package config
