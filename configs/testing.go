package configs

import (
	"fmt"
	"testing"

	"github.com/joho/godotenv"
)

// ParseTestConfig parses a Config for tests. It reads an optional
// ".env.test" file and forces an isolated sqlite database per test so
// tests can run in parallel without sharing state.
func ParseTestConfig(t *testing.T) *Config {
	t.Helper()

	_ = godotenv.Load(".env.test")

	t.Setenv(envPrefix+"DATABASE_TYPE", "sqlite")
	t.Setenv(envPrefix+"DATABASE_DSN", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))

	cfg, err := Parse()
	if err != nil {
		t.Fatal(err)
	}

	return cfg
}
