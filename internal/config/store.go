package config

// StoreConfig holds settings for the snapshot archive.
type StoreConfig struct {
	// Dir is the database directory. Empty selects the platform data directory.
	Dir string
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{}
}
