// Package config loads editor settings.
//
// Settings come from three places, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a config file: $XDG_CONFIG_HOME/rmedit/config.toml, or any .toml,
//     .yaml or .yml file passed explicitly
//  3. RMEDIT_* environment variables
//
// Example config.toml:
//
//	[logging]
//	level = "debug"
//	file = "/tmp/rmedit.log"
//
//	[editor]
//	line_numbers = "relative"
//	gutter_min_width = 4
//	tab_width = 4
//	watch_external_changes = true
//
//	[files]
//	mode = "0644"
package config
