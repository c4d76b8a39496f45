package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("TP_TEST_STR", "value")
	if got := getEnv("TP_TEST_STR", "fallback"); got != "value" {
		t.Errorf("getEnv(set) = %q, want %q", got, "value")
	}
	if got := getEnv("TP_TEST_STR_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv(unset) = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "42", want: 42},
		{name: "not a number", value: "many", want: 7},
		{name: "empty", value: "", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TP_TEST_INT", tt.value)
			if got := getEnvInt("TP_TEST_INT", 7); got != tt.want {
				t.Errorf("getEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	if (&Config{Env: "production"}).IsDevelopment() {
		t.Error("production reported as development")
	}
	if !(&Config{Env: "development"}).IsDevelopment() {
		t.Error("development not reported as development")
	}
	// anything that is not explicitly production counts as development
	if !(&Config{Env: ""}).IsDevelopment() {
		t.Error("empty env not reported as development")
	}
}
