// Package config handles loading and parsing book-journal configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bookjournal/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. BOOKJOURNAL_API_URL, when set, overrides api_url from any source
//
// # Default Values
//
//   - Config file: ~/.config/bookjournal/config.toml
//   - API base URL: http://localhost:3000/api
//   - Reader identity file: ~/.config/bookjournal/reader.toml
//   - Log file: ~/.local/state/bookjournal/bookjournal.log
//
// # TOML Format
//
// Example config.toml:
//
//	api_url = "https://journal.example.com/api"
//	reader_path = "~/.config/bookjournal/reader.toml"
//	log_path = "~/.local/state/bookjournal/bookjournal.log"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. A
// missing config file is NOT an error - the client works out-of-the-box
// against a local service.
package config
