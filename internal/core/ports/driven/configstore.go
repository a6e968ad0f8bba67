package driven

// ConfigStore provides persistent key-value configuration.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// Set stores a configuration value.
	Set(key string, value any)

	// Save persists the configuration.
	Save() error
}

// Well-known configuration keys.
const (
	// ConfigKeyBaseURL is the webhook backend base URL.
	ConfigKeyBaseURL = "backend.base_url"

	// ConfigKeyToken is the session token.
	ConfigKeyToken = "backend.token"

	// ConfigKeyStagingDB is the directory holding the staging database.
	ConfigKeyStagingDB = "staging.db_dir"

	// ConfigKeyDropDir is the watched drop directory.
	ConfigKeyDropDir = "staging.drop_dir"
)
