package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "roomchat.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("unexpected path %q", resolved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	want := Default()
	if cfg.Client.Endpoint != want.Client.Endpoint || cfg.Server.Addr != want.Server.Addr {
		t.Fatalf("unexpected config %+v", cfg)
	}

	// The written file must load back to the same values.
	again, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != cfg {
		t.Fatalf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomchat.yaml")
	content := `log_level: debug
client:
  endpoint: ws://192.168.10.151:8080/ws
  room: general
  username: alice
  dial_timeout: 3s
  max_message_bytes: 4096
server:
  addr: ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ROOMCHAT_CLIENT_USERNAME", "bob")
	t.Setenv("ROOMCHAT_SERVER_SHUTDOWN_TIMEOUT", "9s")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.Client.Endpoint != "ws://192.168.10.151:8080/ws" || cfg.Client.Room != "general" {
		t.Errorf("unexpected client config %+v", cfg.Client)
	}
	if cfg.Client.Username != "bob" {
		t.Errorf("env should override file username, got %q", cfg.Client.Username)
	}
	if cfg.Client.DialTimeout != 3*time.Second {
		t.Errorf("dial timeout = %v", cfg.Client.DialTimeout)
	}
	if cfg.Client.MaxMessageBytes != 4096 {
		t.Errorf("client max message bytes = %d", cfg.Client.MaxMessageBytes)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ShutdownTimeout != 9*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Server.ReadHeaderTimeout != Default().Server.ReadHeaderTimeout {
		t.Errorf("missing keys should keep defaults, got %v", cfg.Server.ReadHeaderTimeout)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomchat.yaml")
	if err := os.WriteFile(path, []byte("client: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := Load(nil, path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestUpdateFromOverridesNonZero(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{
		Client: ClientConfig{Room: "general", Username: "alice"},
		Server: ServerConfig{Addr: ":9999"},
	})

	if cfg.Client.Room != "general" || cfg.Client.Username != "alice" || cfg.Server.Addr != ":9999" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Client.Endpoint != Default().Client.Endpoint {
		t.Fatalf("zero values must not override, got %q", cfg.Client.Endpoint)
	}
}
