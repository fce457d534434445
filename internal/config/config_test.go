package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/qrhunt/scavenger/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.StoreDriver != config.DriverLibSQL {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, config.DriverLibSQL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.GateTimeout != 5*time.Second {
		t.Errorf("GateTimeout = %v, want 5s", cfg.GateTimeout)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, want admin", cfg.AdminUsername)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreDriver != config.DriverMongo {
		t.Errorf("StoreDriver = %q, want mongo", cfg.StoreDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins = %v, want 2 entries", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "no admin credentials",
			env:  map[string]string{},
		},
		{
			name: "unknown driver",
			env:  map[string]string{"ADMIN_PASSWORD": "x", "STORE_DRIVER": "postgres"},
		},
		{
			name: "mongo without uri",
			env:  map[string]string{"ADMIN_PASSWORD": "x", "STORE_DRIVER": "mongo"},
		},
		{
			name: "gate base url not a url",
			env:  map[string]string{"ADMIN_PASSWORD": "x", "GATE_BASE_URL": "not a url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_PASSWORD", "")
			t.Setenv("ADMIN_PASSWORD_HASH", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := config.Load(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
