package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ignite/ses-ingest/internal/domain"
	"github.com/ignite/ses-ingest/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against a DynamoDB table
// keyed by campaign id.
type CampaignRepo struct {
	db    *dynamodb.Client
	table string
}

// NewCampaignRepo creates a DynamoDB-backed campaign repository.
func NewCampaignRepo(db *dynamodb.Client, table string) *CampaignRepo {
	return &CampaignRepo{db: db, table: table}
}

func (r *CampaignRepo) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	out, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get campaign %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, campaign.ErrNotFound
	}

	var c domain.Campaign
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal campaign %s: %w", id, err)
	}
	return &c, nil
}

// FindByMessageID scans for the campaign whose send batch contains the
// message id. Campaign counts are small (one row per send batch), so a
// filtered scan is acceptable here; a message-id GSI would replace this if
// batches ever number in the tens of thousands.
func (r *CampaignRepo) FindByMessageID(ctx context.Context, messageID string) (*domain.Campaign, error) {
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.db.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.table),
			FilterExpression: aws.String("contains(message_ids, :mid)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":mid": &types.AttributeValueMemberS{Value: messageID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("find campaign by message id: %w", err)
		}

		if len(out.Items) > 0 {
			var c domain.Campaign
			if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
				return nil, fmt.Errorf("unmarshal campaign: %w", err)
			}
			return &c, nil
		}

		if out.LastEvaluatedKey == nil {
			return nil, campaign.ErrNotFound
		}
		startKey = out.LastEvaluatedKey
	}
}

// AddRecipients unions addresses into the named engagement set with a
// single ADD on a string set: atomic, and a no-op for members already
// present. The condition keeps a deleted campaign from being resurrected
// as a phantom item.
func (r *CampaignRepo) AddRecipients(ctx context.Context, id string, set domain.EngagementSet, emails []string) error {
	if len(emails) == 0 {
		return nil
	}

	_, err := r.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("ADD #set :emails SET updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{
			"#set": string(set),
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":emails": &types.AttributeValueMemberSS{Value: emails},
			":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return campaign.ErrNotFound
		}
		return fmt.Errorf("add recipients to %s.%s: %w", id, set, err)
	}
	return nil
}

// Create persists a campaign. Used by seed tooling; the pipeline never
// creates campaigns.
func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	av, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal campaign: %w", err)
	}
	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}
