package driven

// ConfigStore provides access to flat, dot-separated setting keys
// such as "runtime.device" or "watch.extensions".
//
// Implementations:
//   - TOML file with environment overrides (adapters/driven/config/file)
//   - In-memory map (adapters/driven/storage/memory)
type ConfigStore interface {
	// Get retrieves a raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" for a missing or non-string value.
	GetString(key string) string

	// GetInt returns 0 for a missing or non-numeric value.
	// Numeric strings are parsed.
	GetInt(key string) int

	// GetBool returns false for a missing or non-boolean value.
	// Strings accepted by strconv.ParseBool are parsed.
	GetBool(key string) bool

	// GetStringSlice returns nil for a missing or non-list value.
	// The file store also splits comma-separated environment overrides.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current values.
	Save() error

	// Load reads values from storage, replacing what is held.
	Load() error

	// Path returns where values are stored.
	Path() string
}
