package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:         "8082",
		DataBackend:  "sqlite",
		SQLiteDBPath: "./test.db",
		CacheSize:    256,
		CacheTTL:     5 * time.Minute,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.SQLiteDBPath = ""
			},
			wantErr: false,
		},
		{
			name: "valid supabase backend config",
			mutate: func(c *Config) {
				c.DataBackend = "supabase"
				c.SupabaseURL = "https://example.supabase.co"
				c.SupabaseKey = "service-role-key"
			},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "invalid" },
			wantErr:     true,
			errorString: "invalid data backend 'invalid': must be one of [memory sqlite supabase]",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "supabase backend missing URL",
			mutate: func(c *Config) {
				c.DataBackend = "supabase"
				c.SupabaseKey = "key"
			},
			wantErr:     true,
			errorString: "Supabase project URL is required when using supabase backend",
		},
		{
			name: "supabase backend invalid URL scheme",
			mutate: func(c *Config) {
				c.DataBackend = "supabase"
				c.SupabaseURL = "ftp://example.supabase.co"
				c.SupabaseKey = "key"
			},
			wantErr:     true,
			errorString: "invalid Supabase URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name: "supabase backend missing key",
			mutate: func(c *Config) {
				c.DataBackend = "supabase"
				c.SupabaseURL = "https://example.supabase.co"
			},
			wantErr:     true,
			errorString: "Supabase API key is required when using supabase backend",
		},
		{
			name:        "invalid cache size - too small",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size 0: must be at least 1",
		},
		{
			name:        "invalid cache size - too large",
			mutate:      func(c *Config) { c.CacheSize = 200000 },
			wantErr:     true,
			errorString: "invalid cache size 200000: must be at most 100000",
		},
		{
			name:        "invalid cache TTL - too short",
			mutate:      func(c *Config) { c.CacheTTL = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid cache TTL 500ms: must be at least 1 second",
		},
		{
			name:        "invalid cache TTL - too long",
			mutate:      func(c *Config) { c.CacheTTL = 25 * time.Hour },
			wantErr:     true,
			errorString: "invalid cache TTL 25h0m0s: must be at most 24 hours",
		},
		{
			name:        "invalid read timeout",
			mutate:      func(c *Config) { c.ReadTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid read timeout 100ms: must be at least 1 second",
		},
		{
			name:        "invalid write timeout",
			mutate:      func(c *Config) { c.WriteTimeout = 0 },
			wantErr:     true,
			errorString: "invalid write timeout 0s: must be at least 1 second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"PORT":           os.Getenv("PORT"),
		"DATA_BACKEND":   os.Getenv("DATA_BACKEND"),
		"SQLITE_DB_PATH": os.Getenv("SQLITE_DB_PATH"),
		"SUPABASE_URL":   os.Getenv("SUPABASE_URL"),
		"SUPABASE_KEY":   os.Getenv("SUPABASE_KEY"),
		"CACHE_SIZE":     os.Getenv("CACHE_SIZE"),
		"CACHE_TTL":      os.Getenv("CACHE_TTL"),
	}

	// Clean environment
	for key := range originalVars {
		os.Unsetenv(key)
	}

	// Restore env vars at end of test
	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8082" {
			t.Errorf("Load() Port = %v, want 8082", cfg.Port)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/budget.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/budget.db", cfg.SQLiteDBPath)
		}
		if cfg.CacheSize != 256 {
			t.Errorf("Load() CacheSize = %v, want 256", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m", cfg.CacheTTL)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("DATA_BACKEND", "supabase")
		os.Setenv("SUPABASE_URL", "https://example.supabase.co")
		os.Setenv("SUPABASE_KEY", "test-key")
		os.Setenv("CACHE_SIZE", "512")
		os.Setenv("CACHE_TTL", "45s")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "supabase" {
			t.Errorf("Load() DataBackend = %v, want supabase", cfg.DataBackend)
		}
		if cfg.SupabaseURL != "https://example.supabase.co" {
			t.Errorf("Load() SupabaseURL = %v, want https://example.supabase.co", cfg.SupabaseURL)
		}
		if cfg.CacheSize != 512 {
			t.Errorf("Load() CacheSize = %v, want 512", cfg.CacheSize)
		}
		if cfg.CacheTTL != 45*time.Second {
			t.Errorf("Load() CacheTTL = %v, want 45s", cfg.CacheTTL)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		os.Setenv("CACHE_SIZE", "invalid")
		os.Setenv("CACHE_TTL", "invalid")

		cfg := Load()

		if cfg.CacheSize != 256 {
			t.Errorf("Load() CacheSize = %v, want 256 (default for invalid input)", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m (default for invalid input)", cfg.CacheTTL)
		}
	})
}
