package config

import "testing"

func TestGetEnvironment(t *testing.T) {
	t.Setenv("IHOURS_SERVER_ENVIRONMENT", "")
	if got := GetEnvironment(); got != EnvDevelopment {
		t.Errorf("GetEnvironment() = %q, want %q", got, EnvDevelopment)
	}

	t.Setenv("IHOURS_SERVER_ENVIRONMENT", "Production")
	if got := GetEnvironment(); got != EnvProduction {
		t.Errorf("GetEnvironment() = %q, want %q", got, EnvProduction)
	}
	if !IsProductionLike() {
		t.Error("IsProductionLike() = false for production")
	}

	t.Setenv("IHOURS_SERVER_ENVIRONMENT", "development")
	if !IsDevelopment() {
		t.Error("IsDevelopment() = false for development")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("IHOURS_TEST_KEY", "value")
	if got := GetEnv("IHOURS_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("GetEnv() = %q, want value", got)
	}
	if got := GetEnv("IHOURS_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}
}
