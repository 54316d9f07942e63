package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ignite/ses-ingest/internal/domain"
)

// suppressionAPI is the slice of the SESv2 client the mirror needs.
type suppressionAPI interface {
	PutSuppressedDestination(ctx context.Context, params *sesv2.PutSuppressedDestinationInput, optFns ...func(*sesv2.Options)) (*sesv2.PutSuppressedDestinationOutput, error)
}

// AccountSuppressor mirrors suppression entries into the SES account-level
// suppression list, so a suppressed address is blocked even for sends that
// bypass our own store. PutSuppressedDestination is an upsert, so mirroring
// is idempotent.
type AccountSuppressor struct {
	client suppressionAPI
}

// NewAccountSuppressor wraps a SESv2 client.
func NewAccountSuppressor(client *sesv2.Client) *AccountSuppressor {
	return &AccountSuppressor{client: client}
}

// Suppress adds the address to the SES account suppression list.
func (a *AccountSuppressor) Suppress(ctx context.Context, email string, reason domain.SuppressionReason) error {
	sesReason := types.SuppressionListReasonBounce
	if reason == domain.ReasonComplaint {
		sesReason = types.SuppressionListReasonComplaint
	}

	_, err := a.client.PutSuppressedDestination(ctx, &sesv2.PutSuppressedDestinationInput{
		EmailAddress: aws.String(email),
		Reason:       sesReason,
	})
	if err != nil {
		return fmt.Errorf("put suppressed destination: %w", err)
	}
	return nil
}
