package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
sns:
  topic_arn: arn:aws:sns:us-west-2:123456789012:ses-events
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Server.Host)
	}
	if cfg.SNS.CertFetchTimeout() != 10*time.Second {
		t.Errorf("CertFetchTimeout = %v, want 10s", cfg.SNS.CertFetchTimeout())
	}
	if cfg.SES.Region != "us-west-2" {
		t.Errorf("SES region = %q", cfg.SES.Region)
	}
	if cfg.Storage.AWSRegion != "us-west-2" {
		t.Errorf("storage region = %q, want SES region fallback", cfg.Storage.AWSRegion)
	}
	if cfg.Storage.CampaignTable != "campaigns" || cfg.Storage.SuppressionTable != "suppressions" || cfg.Storage.SubscriberTable != "subscribers" {
		t.Errorf("table defaults = %q/%q/%q", cfg.Storage.CampaignTable, cfg.Storage.SuppressionTable, cfg.Storage.SubscriberTable)
	}
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: 127.0.0.1
sns:
  topic_arn: arn:topic
  cert_fetch_timeout_seconds: 3
  confirm_subscriptions: true
ses:
  region: eu-west-1
  mirror_suppression: true
storage:
  campaign_table: camp
  suppression_table: supp
  subscriber_table: subs
  aws_region: eu-west-1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if !cfg.SNS.ConfirmSubscriptions {
		t.Error("ConfirmSubscriptions = false")
	}
	if cfg.SNS.CertFetchTimeout() != 3*time.Second {
		t.Errorf("CertFetchTimeout = %v", cfg.SNS.CertFetchTimeout())
	}
	if !cfg.SES.MirrorSuppression {
		t.Error("MirrorSuppression = false")
	}
	if cfg.Storage.CampaignTable != "camp" {
		t.Errorf("CampaignTable = %q", cfg.Storage.CampaignTable)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	path := writeConfig(t, `
sns:
  topic_arn: arn:from-file
`)

	t.Setenv("SNS_TOPIC_ARN", "arn:from-env")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("CAMPAIGN_TABLE", "campaigns-prod")

	cfg, err := LoadFromEnv(path)
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.SNS.TopicARN != "arn:from-env" {
		t.Errorf("TopicARN = %q, want env override", cfg.SNS.TopicARN)
	}
	if cfg.Storage.AWSRegion != "us-east-1" {
		t.Errorf("AWSRegion = %q", cfg.Storage.AWSRegion)
	}
	if cfg.Storage.CampaignTable != "campaigns-prod" {
		t.Errorf("CampaignTable = %q", cfg.Storage.CampaignTable)
	}
}

func TestLoadFromEnv_RequiresTopicARN(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)
	t.Setenv("SNS_TOPIC_ARN", "")

	if _, err := LoadFromEnv(path); err == nil {
		t.Error("expected error when topic ARN is missing")
	}
}

func TestGetHost_ContainerDetection(t *testing.T) {
	t.Setenv("ECS_CONTAINER_METADATA_URI", "http://169.254.170.2/v3")
	c := ServerConfig{Host: "localhost"}
	if got := c.GetHost(); got != "0.0.0.0" {
		t.Errorf("GetHost = %q, want 0.0.0.0 in container", got)
	}
}

func TestGetAWSProfile(t *testing.T) {
	c := StorageConfig{AWSProfile: "dev"}

	if got := c.GetAWSProfile(); got != "dev" {
		t.Errorf("GetAWSProfile = %q, want dev", got)
	}

	t.Setenv("AWS_PROFILE_OVERRIDE", "iam")
	if got := c.GetAWSProfile(); got != "" {
		t.Errorf("GetAWSProfile = %q, want empty for iam override", got)
	}
}
