package config

// Default paths and limits
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./deckoracle.db"

	// DefaultMaxUploadBytes caps the size of uploaded import files (10 MiB)
	DefaultMaxUploadBytes = int64(10 << 20)
)
