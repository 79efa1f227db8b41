// Package config loads runtime configuration for the dndadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. DNDADMIN_* environment variables (see EnvConfig).
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000",
//	  "request_timeout": "20s",
//	  "hash_encoding": "hex",
//	  "role_options": ["User", "DM", "Admin"],
//	  "data_dir": "/home/me/.config/DnDToolAdmin",
//	  "token_sealer": "aesgcm",
//	  "log_level": "warn"
//	}
package config
