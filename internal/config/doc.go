// Package config provides user configuration management for fritz-profiles.
//
// The configuration is a YAML file holding the router connection settings
// and named presets of device to profile assignments.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/fritz-profiles/config.yaml or $HOME/.config/fritz-profiles/config.yaml
//   - macOS: $HOME/.config/fritz-profiles/config.yaml
//   - Windows: %LOCALAPPDATA%\fritz-profiles\config.yaml
//
// # Precedence
//
// Defaults, then the file, then FRITZ_URL, FRITZ_USER, FRITZ_PASSWORD and
// FRITZ_TIMEOUT. Command-line flags are applied last by the CLI.
//
// # Example
//
//	version: 1
//	router:
//	  url: http://fritz.box
//	  username: ""
//	  timeout: 10
//	presets:
//	  bedtime:
//	    assignments:
//	      - device: landevice1234
//	        profile: filtprof3
//
// # Security
//
// The router password is NEVER written to the file. It is read from
// FRITZ_PASSWORD, the --password flag, or prompted on a terminal.
package config
