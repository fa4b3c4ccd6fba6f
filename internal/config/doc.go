// Package config defines the editor settings and loads them.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults (Default)
//  2. the user file, $XDG_CONFIG_HOME/fresh/config.toml
//  3. FRESH_* environment variables
//
// Command line flags are applied by the caller on the returned Config.
//
// An example file:
//
//	[editor]
//	tab_width = 4
//	line_wrap = true
//	line_numbers = true
//
//	[search]
//	max_results = 100
//
//	[log]
//	level = "info"
//	file = "/tmp/fresh.log"
package config
