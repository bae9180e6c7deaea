package config

import "time"

// Default returns a configuration populated with workable local-dev values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
			File:  "server.log",
		},
		Web: WebConfig{
			StaticDir: "./web",
		},
		Database: DatabaseConfig{
			Path: "data/brandkit.db",
		},
		Auth: AuthConfig{
			JWTSecret: "brandkit_dev_secret",
			Expiry:    24 * time.Hour,
			Store: StoreConfig{
				Type: "memory",
			},
		},
		ObjectStore: ObjectStoreConfig{
			Bucket: "brand-assets",
		},
		Generation: GenerationConfig{
			ImageModel:    "dall-e-3",
			TextModel:     "gpt-4o-mini",
			ImageSize:     "1024x1024",
			Temperature:   0.7,
			MaxConcurrent: 4,
		},
		Resolver: ResolverConfig{
			CacheSize:   512,
			LoadTimeout: 10 * time.Second,
			MaxAttempts: 3,
			RetryStep:   time.Second,
		},
		Export: ExportConfig{
			FetchTimeout: 30 * time.Second,
		},
	}
}
