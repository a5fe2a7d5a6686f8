package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "JWT_EXPIRES_IN", "SESSION_SWEEP_INTERVAL", "SEED_DEMO_DATA", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("JWTExpirationDur = %s, want 24h", cfg.JWTExpirationDur)
	}
	if cfg.SessionSweepInterval != 5*time.Minute {
		t.Errorf("SessionSweepInterval = %s, want 5m", cfg.SessionSweepInterval)
	}
	if cfg.SeedDemoData {
		t.Error("expected SeedDemoData to default to false")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("SESSION_SWEEP_INTERVAL", "not-a-duration")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.DBDriver != "postgres" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.JWTExpirationDur != 2*time.Hour {
		t.Errorf("JWTExpirationDur = %s, want 2h", cfg.JWTExpirationDur)
	}
	if cfg.SessionSweepInterval != 5*time.Minute {
		t.Errorf("invalid duration should fall back, got %s", cfg.SessionSweepInterval)
	}
	if !cfg.SeedDemoData {
		t.Error("expected SeedDemoData true")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:                 "8080",
			DBDriver:             "sqlite",
			SQLitePath:           "test.db",
			JWTExpirationDur:     time.Hour,
			SessionSweepInterval: time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad_port", mutate: func(c *Config) { c.Port = "http" }, wantErr: true},
		{name: "port_out_of_range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: true},
		{name: "unknown_driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: true},
		{name: "sqlite_without_path", mutate: func(c *Config) { c.SQLitePath = "" }, wantErr: true},
		{name: "postgres_without_host", mutate: func(c *Config) { c.DBDriver = "postgres"; c.DBName = "x" }, wantErr: true},
		{name: "zero_sweep", mutate: func(c *Config) { c.SessionSweepInterval = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
