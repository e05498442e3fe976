package configs

import "testing"

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MAP_STYLE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		t.Errorf("expected development JWT secret fallback")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.MapStyleURL != DefaultMapStyleURL {
		t.Errorf("expected default map style, got %q", cfg.MapStyleURL)
	}
	if cfg.CreatePinBurst != 5 {
		t.Errorf("expected default burst 5, got %d", cfg.CreatePinBurst)
	}
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/pinmap")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected missing JWT_SECRET to fail in production")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected missing DATABASE_URL to fail in production")
	}
}

func TestLoadConfigRejectsPrivilegedPort(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "80")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected port 80 to be rejected")
	}
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("PINMAP_API_URL", "https://pins.example.com/")
	t.Setenv("PINMAP_TOKEN", "tok")

	cfg, err := LoadClientConfig()
	if err != nil {
		t.Fatalf("LoadClientConfig: %v", err)
	}
	if cfg.APIURL != "https://pins.example.com" || cfg.Token != "tok" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Position != nil {
		t.Fatalf("expected no position by default, got %+v", cfg.Position)
	}

	t.Setenv("PINMAP_POSITION", "48.85, 2.35")
	cfg, err = LoadClientConfig()
	if err != nil {
		t.Fatalf("LoadClientConfig with position: %v", err)
	}
	if cfg.Position == nil || cfg.Position.Latitude != 48.85 || cfg.Position.Longitude != 2.35 {
		t.Fatalf("unexpected position %+v", cfg.Position)
	}

	t.Setenv("PINMAP_POSITION", "95,0")
	if _, err := LoadClientConfig(); err == nil {
		t.Fatalf("expected out of range latitude to be rejected")
	}
	t.Setenv("PINMAP_POSITION", "")

	t.Setenv("PINMAP_API_URL", "ftp://pins")
	if _, err := LoadClientConfig(); err == nil {
		t.Fatalf("expected non-http URL to be rejected")
	}
}
