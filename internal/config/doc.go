// Package config provides configuration management for the devdeck CLI.
//
// This package loads, saves and validates devdeck's own configuration file.
// It is distinct from the assistant settings and the service registry,
// which are read through the host adapter.
//
// # Configuration File
//
// The default configuration file location is ~/.config/devdeck/config.yaml.
// A config.yaml in the working directory takes precedence. The file uses
// YAML with the following structure:
//
//	version: 1
//	host: desktop            # desktop | extension | browser
//	command_timeout: 1m0s
//	pages:
//	  enabled_pages: []
//	  disabled_pages: [about]
//	  file: pages.toml        # optional, JSON, YAML or TOML
//	browser:
//	  store: ""               # sqlite path; empty keeps storage in memory
//	  namespace: devdeck
//	extension:
//	  workspace: /path/to/project
//
// Every key can also be set through the environment with the DEVDECK_
// prefix, for example DEVDECK_HOST=browser or DEVDECK_BROWSER_STORE.
//
// # Loading Configuration
//
// Call [Init] once, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// An explicit path that does not exist is an error matching
// errors.ErrNotFound. Invalid values produce a [ValidationError] listing
// each offending field; it matches errors.ErrInvalidConfig.
package config
