package config

import "testing"

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DASHBOARD_ALLOW_UNASSIGNED", "false")
	t.Setenv("DASHBOARD_PASS_THRESHOLD", "60")
	t.Setenv("DASHBOARD_COLLECT_PAGE_SIZE", "10")

	cfg, err := LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "9090")
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("JWT.Secret = %q, want %q", cfg.JWT.Secret, "test-secret")
	}
	if cfg.Dashboard.AllowUnassignedStudents {
		t.Error("Dashboard.AllowUnassignedStudents = true, want false")
	}
	if cfg.Dashboard.PassThreshold != 60 {
		t.Errorf("Dashboard.PassThreshold = %v, want 60", cfg.Dashboard.PassThreshold)
	}
	if cfg.Dashboard.CollectPageSize != 10 {
		t.Errorf("Dashboard.CollectPageSize = %d, want 10", cfg.Dashboard.CollectPageSize)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Dashboard.PassThreshold != 70 {
		t.Errorf("Dashboard.PassThreshold = %v, want 70", cfg.Dashboard.PassThreshold)
	}
	if cfg.Dashboard.CollectPageSize != 25 {
		t.Errorf("Dashboard.CollectPageSize = %d, want 25", cfg.Dashboard.CollectPageSize)
	}
	if len(cfg.Dashboard.Markers.ReadingReport) != 2 {
		t.Errorf("Dashboard.Markers.ReadingReport has %d entries, want 2", len(cfg.Dashboard.Markers.ReadingReport))
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig("does-not-exist.yaml"); err == nil {
		t.Fatal("LoadConfig() succeeded without a JWT secret")
	}
}
