// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and can be tested independently of the
// CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/cloneboot/cloneboot/internal/config"
	"github.com/cloneboot/cloneboot/internal/platform/pcloud"
	"github.com/cloneboot/cloneboot/internal/platform/s3"
	"github.com/cloneboot/cloneboot/internal/platform/ssh"
	"github.com/cloneboot/cloneboot/internal/refresh"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the refresh configuration.
	loadConfigFile = config.LoadFile

	// newCloudClient creates the control-plane client.
	newCloudClient = func(ctx context.Context, cfg pcloud.Config) (pcloud.Client, error) {
		return pcloud.NewRealClient(ctx, cfg)
	}

	// newPrepExecutor creates the SSH executor for the disk prep bracket.
	newPrepExecutor = func(cfg *ssh.Config) (refresh.Executor, error) {
		return ssh.NewClient(cfg)
	}

	// newObjectStore creates the evidence upload client.
	newObjectStore = func(endpoint, region, accessKey, secretKey string) (refresh.ObjectStore, error) {
		return s3.NewClient(endpoint, region, accessKey, secretKey)
	}

	// runRefresh executes the refresh pipeline.
	runRefresh = refresh.Run

	// readFile reads the SSH private key (for testing injection).
	readFile = os.ReadFile
)

// Run loads the configuration, builds the refresh dependencies, and executes
// the full refresh workflow:
//  1. Resolve the target partition and detect an interrupted prior run
//  2. Identify, clone, and attach the source's boot and data volumes
//  3. Configure the boot device and start the target to ACTIVE
//
// On failure an evidence bundle is written (and uploaded when an evidence
// bucket is configured) before the error is returned. On success the
// optional downstream job is triggered.
func Run(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	cloud, err := newCloudClient(ctx, pcloud.Config{
		APIKey:        cfg.Cloud.APIKey,
		Region:        cfg.Cloud.Region,
		ResourceGroup: cfg.Cloud.ResourceGroup,
		WorkspaceCRN:  cfg.Cloud.WorkspaceCRN,
	})
	if err != nil {
		return fmt.Errorf("initializing control-plane client: %w", err)
	}

	rctx := refresh.NewContext(ctx, cfg, cloud)

	if cfg.Prep.Host != "" {
		prep, err := buildPrep(&cfg.Prep)
		if err != nil {
			return fmt.Errorf("initializing disk prep: %w", err)
		}
		rctx.Prep = prep
	}

	runErr := runRefresh(rctx)
	if runErr != nil {
		var store refresh.ObjectStore
		if cfg.Evidence.Bucket != "" {
			s, err := newObjectStore(cfg.Evidence.Endpoint, cfg.Evidence.Region,
				cfg.Evidence.AccessKey, cfg.Evidence.SecretKey)
			if err != nil {
				rctx.Observer.Warnf("evidence store unavailable: %v", err)
			} else {
				store = s
			}
		}
		refresh.WriteEvidence(rctx, store, cfg.Evidence.Bucket, cfg.Evidence.Dir, runErr)
		return runErr
	}

	if err := refresh.TriggerDownstream(ctx, nil, cfg.Downstream, rctx.Observer); err != nil {
		rctx.Observer.Warnf("downstream trigger failed: %v", err)
	}

	return nil
}

// buildPrep wires the SSH-backed disk suspend/resume bracket.
func buildPrep(cfg *config.PrepConfig) (refresh.Prep, error) {
	key, err := readFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("reading prep key file: %w", err)
	}

	executor, err := newPrepExecutor(&ssh.Config{
		Host:       cfg.Host,
		User:       cfg.User,
		PrivateKey: key,
		JumpHost:   cfg.JumpHost,
	})
	if err != nil {
		return nil, err
	}

	return &refresh.SSHPrep{
		Executor:       executor,
		SuspendCommand: cfg.SuspendCommand,
		ResumeCommand:  cfg.ResumeCommand,
	}, nil
}
