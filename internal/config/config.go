package config

import (
	"fmt"
	"os"
)

// Environment variables holding credentials. Secrets never live in the
// config file.
const (
	EnvAPIKey         = "CLONEBOOT_API_KEY"
	EnvTriggerToken   = "CLONEBOOT_TRIGGER_TOKEN"
	EnvEvidenceAccess = "CLONEBOOT_EVIDENCE_ACCESS_KEY"
	EnvEvidenceSecret = "CLONEBOOT_EVIDENCE_SECRET_KEY" // #nosec G101 - env var name, not a credential
	fallbackAPIKeyEnv = "IBMCLOUD_API_KEY"
)

// Config describes one refresh run.
type Config struct {
	// Source is the partition whose volumes are cloned (name or id).
	Source string `mapstructure:"source"`

	// Target is the partition that receives the clones and is booted.
	Target string `mapstructure:"target"`

	// BootMode is the boot device mode configured before start.
	BootMode string `mapstructure:"bootMode"`

	// ClonePrefix is the base of the clone task naming prefix.
	ClonePrefix string `mapstructure:"clonePrefix"`

	Cloud      CloudConfig      `mapstructure:"cloud"`
	Prep       PrepConfig       `mapstructure:"prep"`
	Evidence   EvidenceConfig   `mapstructure:"evidence"`
	Downstream DownstreamConfig `mapstructure:"downstream"`
}

// CloudConfig targets the control plane. The API key is read from the
// environment, not the file.
type CloudConfig struct {
	Region        string `mapstructure:"region"`
	ResourceGroup string `mapstructure:"resourceGroup"`
	WorkspaceCRN  string `mapstructure:"workspaceCRN"`

	APIKey string `mapstructure:"-"`
}

// PrepConfig describes the optional disk-suspend/resume bracket on the
// source system. When Host is empty the bracket is skipped.
type PrepConfig struct {
	Host           string `mapstructure:"host"`
	JumpHost       string `mapstructure:"jumpHost"`
	User           string `mapstructure:"user"`
	KeyFile        string `mapstructure:"keyFile"`
	SuspendCommand string `mapstructure:"suspendCommand"`
	ResumeCommand  string `mapstructure:"resumeCommand"`
}

// EvidenceConfig describes where failure-evidence bundles go. When Bucket is
// empty, bundles are written locally only.
type EvidenceConfig struct {
	Dir      string `mapstructure:"dir"`
	Endpoint string `mapstructure:"endpoint"`
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`

	AccessKey string `mapstructure:"-"`
	SecretKey string `mapstructure:"-"`
}

// DownstreamConfig describes the optional follow-on pipeline trigger.
type DownstreamConfig struct {
	URL string `mapstructure:"url"`
	Job string `mapstructure:"job"`

	Token string `mapstructure:"-"`
}

// Validate checks the configuration for the gaps that would otherwise fail
// mid-run.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source partition is required")
	}
	if c.Target == "" {
		return fmt.Errorf("target partition is required")
	}
	if c.Source == c.Target {
		return fmt.Errorf("source and target partitions must differ")
	}
	if c.Cloud.Region == "" {
		return fmt.Errorf("cloud.region is required")
	}
	if c.Cloud.WorkspaceCRN == "" {
		return fmt.Errorf("cloud.workspaceCRN is required")
	}
	if c.Prep.Host != "" {
		if c.Prep.User == "" {
			return fmt.Errorf("prep.user is required when prep.host is set")
		}
		if c.Prep.KeyFile == "" {
			return fmt.Errorf("prep.keyFile is required when prep.host is set")
		}
	}
	if c.Evidence.Bucket != "" && c.Evidence.Region == "" {
		return fmt.Errorf("evidence.region is required when evidence.bucket is set")
	}
	return nil
}

// loadSecrets pulls credentials from the environment.
func (c *Config) loadSecrets() {
	c.Cloud.APIKey = os.Getenv(EnvAPIKey)
	if c.Cloud.APIKey == "" {
		c.Cloud.APIKey = os.Getenv(fallbackAPIKeyEnv)
	}
	c.Downstream.Token = os.Getenv(EnvTriggerToken)
	c.Evidence.AccessKey = os.Getenv(EnvEvidenceAccess)
	c.Evidence.SecretKey = os.Getenv(EnvEvidenceSecret)
}
