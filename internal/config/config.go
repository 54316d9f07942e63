package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	SNS     SNSConfig     `yaml:"sns"`
	SES     SESConfig     `yaml:"ses"`
	Storage StorageConfig `yaml:"storage"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with ECS detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// SNSConfig holds the inbound notification settings. TopicARN is the single
// trusted topic; notifications from any other topic are ignored without
// verification.
type SNSConfig struct {
	TopicARN                string `yaml:"topic_arn"`
	CertFetchTimeoutSeconds int    `yaml:"cert_fetch_timeout_seconds"`
	ConfirmSubscriptions    bool   `yaml:"confirm_subscriptions"`
}

// CertFetchTimeout returns the signing-cert fetch timeout as a duration
func (c SNSConfig) CertFetchTimeout() time.Duration {
	return time.Duration(c.CertFetchTimeoutSeconds) * time.Second
}

// SESConfig holds the SES account-level suppression mirror settings
type SESConfig struct {
	Region            string `yaml:"region"`
	MirrorSuppression bool   `yaml:"mirror_suppression"`
}

// StorageConfig holds DynamoDB table configuration
type StorageConfig struct {
	CampaignTable   string `yaml:"campaign_table"`
	SuppressionTable string `yaml:"suppression_table"`
	SubscriberTable string `yaml:"subscriber_table"`
	AWSRegion       string `yaml:"aws_region"`
	AWSProfile      string `yaml:"aws_profile"` // Empty string uses default credential chain (IAM role on ECS)
}

// GetAWSProfile returns the AWS profile, with environment variable override
func (c StorageConfig) GetAWSProfile() string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return "" // Use default credential chain (IAM role)
		}
		return envProfile
	}
	// On ECS/Lambda, don't use a profile - use IAM role
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return c.AWSProfile
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.SNS.CertFetchTimeoutSeconds == 0 {
		cfg.SNS.CertFetchTimeoutSeconds = 10
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "us-west-2"
	}
	if cfg.Storage.AWSRegion == "" {
		cfg.Storage.AWSRegion = cfg.SES.Region
	}
	if cfg.Storage.CampaignTable == "" {
		cfg.Storage.CampaignTable = "campaigns"
	}
	if cfg.Storage.SuppressionTable == "" {
		cfg.Storage.SuppressionTable = "suppressions"
	}
	if cfg.Storage.SubscriberTable == "" {
		cfg.Storage.SubscriberTable = "subscribers"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if arn := os.Getenv("SNS_TOPIC_ARN"); arn != "" {
		cfg.SNS.TopicARN = arn
	}
	if region := os.Getenv("AWS_SES_REGION"); region != "" {
		cfg.SES.Region = region
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Storage.AWSRegion = region
	}
	if table := os.Getenv("CAMPAIGN_TABLE"); table != "" {
		cfg.Storage.CampaignTable = table
	}
	if table := os.Getenv("SUPPRESSION_TABLE"); table != "" {
		cfg.Storage.SuppressionTable = table
	}
	if table := os.Getenv("SUBSCRIBER_TABLE"); table != "" {
		cfg.Storage.SubscriberTable = table
	}

	if cfg.SNS.TopicARN == "" {
		return nil, fmt.Errorf("sns.topic_arn (or SNS_TOPIC_ARN) is required")
	}

	return cfg, nil
}
