package ssh

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"
)

// generateTestKey generates a PEM-encoded RSA private key for use in tests.
func generateTestKey(t *testing.T) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func TestNewClient_Success(t *testing.T) {
	cfg := &Config{
		Host:       "192.168.1.100",
		User:       "root",
		PrivateKey: generateTestKey(t),
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if client == nil {
		t.Fatal("expected client, got nil")
	}

	// Verify defaults were applied
	if client.config.Port != defaultPort { //nolint:staticcheck // t.Fatal above ensures client is not nil
		t.Errorf("expected port %d, got %d", defaultPort, client.config.Port)
	}
	if client.config.DialTimeout != defaultDialTimeout {
		t.Errorf("expected timeout %v, got %v", defaultDialTimeout, client.config.DialTimeout)
	}
	if client.config.MaxAttempts != defaultMaxAttempts {
		t.Errorf("expected max attempts %d, got %d", defaultMaxAttempts, client.config.MaxAttempts)
	}
	if client.config.RetryDelay != defaultRetryDelay {
		t.Errorf("expected retry delay %v, got %v", defaultRetryDelay, client.config.RetryDelay)
	}
}

func TestNewClient_InvalidKey(t *testing.T) {
	cfg := &Config{
		Host:       "192.168.1.100",
		User:       "root",
		PrivateKey: []byte("invalid key"),
	}

	_, err := NewClient(cfg)
	if err == nil {
		t.Fatal("expected error for invalid private key, got nil")
	}

	want := "failed to parse private key"
	if len(err.Error()) < len(want) || err.Error()[:len(want)] != want {
		t.Errorf("expected error starting with %q, got: %v", want, err)
	}
}

func TestNewClient_NilConfig(t *testing.T) {
	_, err := NewClient(nil)
	if err == nil {
		t.Fatal("expected error for nil config, got nil")
	}

	if err.Error() != "config cannot be nil" {
		t.Errorf("expected 'config cannot be nil' error, got: %v", err)
	}
}

func TestNewClient_RequiredFields(t *testing.T) {
	key := generateTestKey(t)

	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "empty host",
			cfg:  &Config{User: "root", PrivateKey: key},
			want: "config host cannot be empty",
		},
		{
			name: "empty user",
			cfg:  &Config{Host: "192.168.1.100", PrivateKey: key},
			want: "config user cannot be empty",
		},
		{
			name: "empty private key",
			cfg:  &Config{Host: "192.168.1.100", User: "root"},
			want: "config private key cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("expected error %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestNewClient_ConfigNotMutated(t *testing.T) {
	cfg := &Config{
		Host:       "192.168.1.100",
		User:       "root",
		PrivateKey: generateTestKey(t),
		// Leave all optional fields as zero values
	}

	_, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Port != 0 {
		t.Errorf("config was mutated: port changed to %d", cfg.Port)
	}
	if cfg.DialTimeout != 0 {
		t.Errorf("config was mutated: DialTimeout changed to %v", cfg.DialTimeout)
	}
	if cfg.MaxAttempts != 0 {
		t.Errorf("config was mutated: MaxAttempts changed to %d", cfg.MaxAttempts)
	}
}

func TestClient_AppliesDefaults(t *testing.T) {
	key := generateTestKey(t)

	tests := []struct {
		name            string
		cfg             *Config
		wantPort        int
		wantDialTimeout time.Duration
		wantMaxAttempts int
		wantRetryDelay  time.Duration
	}{
		{
			name: "zero values get defaults",
			cfg: &Config{
				Host:       "192.168.1.100",
				User:       "root",
				PrivateKey: key,
			},
			wantPort:        defaultPort,
			wantDialTimeout: defaultDialTimeout,
			wantMaxAttempts: defaultMaxAttempts,
			wantRetryDelay:  defaultRetryDelay,
		},
		{
			name: "custom values are preserved",
			cfg: &Config{
				Host:        "192.168.1.100",
				Port:        2222,
				User:        "root",
				PrivateKey:  key,
				JumpHost:    "bastion.example.com:22",
				DialTimeout: 5 * time.Second,
				MaxAttempts: 10,
				RetryDelay:  2 * time.Second,
			},
			wantPort:        2222,
			wantDialTimeout: 5 * time.Second,
			wantMaxAttempts: 10,
			wantRetryDelay:  2 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if client.config.Port != tt.wantPort {
				t.Errorf("port = %d, want %d", client.config.Port, tt.wantPort)
			}
			if client.config.DialTimeout != tt.wantDialTimeout {
				t.Errorf("DialTimeout = %v, want %v", client.config.DialTimeout, tt.wantDialTimeout)
			}
			if client.config.MaxAttempts != tt.wantMaxAttempts {
				t.Errorf("MaxAttempts = %d, want %d", client.config.MaxAttempts, tt.wantMaxAttempts)
			}
			if client.config.RetryDelay != tt.wantRetryDelay {
				t.Errorf("RetryDelay = %v, want %v", client.config.RetryDelay, tt.wantRetryDelay)
			}
		})
	}
}

func TestExecute_ContextCancellation(t *testing.T) {
	cfg := &Config{
		Host:        "192.168.1.100", // Non-existent host
		User:        "root",
		PrivateKey:  generateTestKey(t),
		MaxAttempts: 3,
		RetryDelay:  100 * time.Millisecond,
		DialTimeout: 100 * time.Millisecond,
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("expected no error creating client, got: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Execute(ctx, "echo test")
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}

	if !errors.Is(err, context.Canceled) {
		t.Logf("Got error: %v", err)
	}
}
