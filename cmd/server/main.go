package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/ignite/ses-ingest/internal/api"
	"github.com/ignite/ses-ingest/internal/config"
	"github.com/ignite/ses-ingest/internal/ingest"
	"github.com/ignite/ses-ingest/internal/pkg/httpretry"
	"github.com/ignite/ses-ingest/internal/repository/dynamo"
	"github.com/ignite/ses-ingest/internal/service/campaign"
	"github.com/ignite/ses-ingest/internal/service/suppression"
	"github.com/ignite/ses-ingest/internal/ses"
	"github.com/ignite/ses-ingest/internal/sns"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	awsCfg, err := loadAWSConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	db := dynamodb.NewFromConfig(awsCfg)
	campaigns := campaign.NewService(dynamo.NewCampaignRepo(db, cfg.Storage.CampaignTable))

	var account suppression.AccountSuppressor
	if cfg.SES.MirrorSuppression {
		account = ses.NewAccountSuppressor(sesv2.NewFromConfig(awsCfg))
	}
	suppressions := suppression.NewService(
		dynamo.NewSuppressionRepo(db, cfg.Storage.SuppressionTable),
		dynamo.NewSubscriberRepo(db, cfg.Storage.SubscriberTable),
		account,
	)

	certClient := httpretry.NewRetryClient(
		&http.Client{Timeout: cfg.SNS.CertFetchTimeout()}, 2)
	verifier := sns.NewVerifier(sns.NewHTTPCertCache(certClient))

	var confirmer httpretry.HTTPDoer
	if cfg.SNS.ConfirmSubscriptions {
		confirmer = httpretry.NewRetryClient(nil, 2)
	}

	pipeline := ingest.New(campaigns, suppressions)
	webhook := api.NewWebhookHandler(verifier, pipeline, cfg.SNS.TopicARN, confirmer)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port),
		Handler:      api.Routes(webhook),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("ses-ingest listening on %s (topic %s)", srv.Addr, cfg.SNS.TopicARN)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down ses-ingest...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func loadAWSConfig(ctx context.Context, storage config.StorageConfig) (aws.Config, error) {
	if profile := storage.GetAWSProfile(); profile != "" {
		return awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(storage.AWSRegion),
			awsconfig.WithSharedConfigProfile(profile),
		)
	}
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(storage.AWSRegion),
	)
}
