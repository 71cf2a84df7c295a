package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080},
		Backend: BackendConfig{Driver: "bleve"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Driver = "sqlite"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "backend.driver") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Driver = "redis"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}

	cfg.Backend.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with addrs set: %v", err)
	}
}

func TestValidate_PoolExceedsCeiling(t *testing.T) {
	cfg := validConfig()
	cfg.Search.RerankPool = 2000
	cfg.Search.RerankCeiling = 1000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for pool above ceiling")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Backend.Driver != "bleve" {
		t.Errorf("driver = %q", cfg.Backend.Driver)
	}
	if cfg.Search.IndexName != "content" {
		t.Errorf("index_name = %q", cfg.Search.IndexName)
	}
	if cfg.Search.DefaultPageSize != 10 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("page sizes = %d/%d", cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	if cfg.Search.CacheSize != 50000 {
		t.Errorf("cache_size = %d", cfg.Search.CacheSize)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("shutdown_timeout_sec = %d", cfg.HTTP.ShutdownSec)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RANKDEX_TEST_VAR", "redis")

	in := []byte("driver: ${RANKDEX_TEST_VAR}\npath: ${RANKDEX_UNSET_VAR:-data/idx}\nempty: ${RANKDEX_UNSET_VAR}")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "driver: redis") {
		t.Errorf("missing substitution: %q", out)
	}
	if !strings.Contains(out, "path: data/idx") {
		t.Errorf("missing default substitution: %q", out)
	}
	if !strings.Contains(out, "empty: \n") && !strings.HasSuffix(out, "empty: ") {
		t.Errorf("unset var should expand empty: %q", out)
	}
}
