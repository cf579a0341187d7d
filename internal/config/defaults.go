package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Remote: RemoteConfig{
			TimeoutSeconds: 15,
		},

		Sync: SyncConfig{
			AutoSync:           true,
			MinIntervalSeconds: 30,
		},
	}
}
