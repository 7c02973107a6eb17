// Package ssh provides SSH client utilities for executing commands on remote servers.
// It handles connection establishment with retry logic, key-based authentication,
// optional jump-host dialing, and command execution with context support.
//
// The primary use case is bracketing clone submission with disk-suspend and
// disk-resume commands on the source system, which is reachable only through
// a jump host.
//
// Security: Host key verification is disabled by default for operator-driven
// recovery tooling. Configure HostKeyCallback for persistent targets.
package ssh

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/cloneboot/cloneboot/internal/util/retry"
)

const (
	defaultPort        = 22
	defaultDialTimeout = 10 * time.Second
	defaultMaxAttempts = 5
	defaultRetryDelay  = 5 * time.Second
)

// Config holds SSH client configuration.
type Config struct {
	Host       string
	Port       int
	User       string
	PrivateKey []byte

	// JumpHost, when non-empty, is the host:port of a bastion the connection
	// is dialed through. The same user and key are used on both hops.
	JumpHost string

	// DialTimeout is the timeout for establishing the TCP connection.
	// If zero, defaultDialTimeout is used.
	DialTimeout time.Duration

	// MaxAttempts is the connection attempt budget.
	// If zero, defaultMaxAttempts is used.
	MaxAttempts int

	// RetryDelay is the delay between connection attempts.
	// If zero, defaultRetryDelay is used.
	RetryDelay time.Duration

	// HostKeyCallback handles host key verification.
	// If nil, ssh.InsecureIgnoreHostKey() is used.
	HostKeyCallback ssh.HostKeyCallback
}

// Client executes commands on a remote server via SSH.
// It parses the private key once during construction and
// creates connections on-demand per Execute call.
type Client struct {
	config *Config
	signer ssh.Signer
}

// NewClient creates a new SSH client and validates the private key.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("config host cannot be empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("config user cannot be empty")
	}
	if len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("config private key cannot be empty")
	}

	// Copy config to avoid mutating caller's struct
	configCopy := *cfg

	if configCopy.Port == 0 {
		configCopy.Port = defaultPort
	}
	if configCopy.DialTimeout == 0 {
		configCopy.DialTimeout = defaultDialTimeout
	}
	if configCopy.MaxAttempts == 0 {
		configCopy.MaxAttempts = defaultMaxAttempts
	}
	if configCopy.RetryDelay == 0 {
		configCopy.RetryDelay = defaultRetryDelay
	}
	if configCopy.HostKeyCallback == nil {
		configCopy.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // Default for operator-driven recovery tooling
	}

	signer, err := ssh.ParsePrivateKey(configCopy.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Client{
		config: &configCopy,
		signer: signer,
	}, nil
}

// Execute runs a command on the remote host with retry logic.
// Returns command output (stdout+stderr) and any execution error.
func (c *Client) Execute(ctx context.Context, command string) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = client.Close() }()

	return c.runCommand(client, command)
}

// connect establishes the SSH connection, dialing through the jump host when
// one is configured.
func (c *Client) connect(ctx context.Context) (*ssh.Client, error) {
	config := &ssh.ClientConfig{
		User: c.config.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(c.signer),
		},
		HostKeyCallback: c.config.HostKeyCallback,
		Timeout:         c.config.DialTimeout,
	}

	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)
	var client *ssh.Client

	err := retry.Do(ctx, func() error {
		var dialErr error
		client, dialErr = c.dial(addr, config)
		return dialErr
	},
		retry.WithMaxAttempts(c.config.MaxAttempts),
		retry.WithDelay(c.config.RetryDelay),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to establish SSH connection to %s after %d attempts: %w",
			addr, c.config.MaxAttempts, err)
	}

	return client, nil
}

// dial connects either directly or through the configured jump host.
func (c *Client) dial(addr string, config *ssh.ClientConfig) (*ssh.Client, error) {
	if c.config.JumpHost == "" {
		return ssh.Dial("tcp", addr, config)
	}

	bastion, err := ssh.Dial("tcp", c.config.JumpHost, config)
	if err != nil {
		return nil, fmt.Errorf("failed to dial jump host %s: %w", c.config.JumpHost, err)
	}

	conn, err := bastion.Dial("tcp", addr)
	if err != nil {
		_ = bastion.Close()
		return nil, fmt.Errorf("failed to dial %s via jump host: %w", addr, err)
	}

	ncc, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = bastion.Close()
		return nil, fmt.Errorf("failed to establish client connection to %s via jump host: %w", addr, err)
	}

	return ssh.NewClient(ncc, chans, reqs), nil
}

// runCommand executes a command on an established SSH session.
func (c *Client) runCommand(client *ssh.Client, command string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create SSH session on %s: %w", c.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("command failed on %s: %w\nCommand: %s\nOutput: %s",
			c.config.Host, err, command, string(output))
	}

	return string(output), nil
}
