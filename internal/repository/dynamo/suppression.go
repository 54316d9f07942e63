package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ignite/ses-ingest/internal/domain"
	"github.com/ignite/ses-ingest/internal/service/suppression"
)

// SuppressionRepo implements suppression.Repository against a DynamoDB
// table keyed by email address.
type SuppressionRepo struct {
	db    *dynamodb.Client
	table string
}

// NewSuppressionRepo creates a DynamoDB-backed suppression repository.
func NewSuppressionRepo(db *dynamodb.Client, table string) *SuppressionRepo {
	return &SuppressionRepo{db: db, table: table}
}

// Upsert writes a suppression entry. Reason, detail, and campaign id are
// refreshed on every write; the entry id and created_at of the first
// suppression are preserved so the record keeps its original timeline.
func (r *SuppressionRepo) Upsert(ctx context.Context, s *domain.Suppression) error {
	_, err := r.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: s.Email},
		},
		UpdateExpression: aws.String(
			"SET reason = :reason, detail = :detail, campaign_id = :cid, " +
				"id = if_not_exists(id, :id), created_at = if_not_exists(created_at, :now)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":reason": &types.AttributeValueMemberS{Value: string(s.Reason)},
			":detail": &types.AttributeValueMemberS{Value: s.Detail},
			":cid":    &types.AttributeValueMemberS{Value: s.CampaignID},
			":id":     &types.AttributeValueMemberS{Value: s.ID},
			":now":    &types.AttributeValueMemberS{Value: s.CreatedAt.Format("2006-01-02T15:04:05Z")},
		},
	})
	if err != nil {
		return fmt.Errorf("upsert suppression for %s: %w", s.Email, err)
	}
	return nil
}

func (r *SuppressionRepo) Get(ctx context.Context, email string) (*domain.Suppression, error) {
	out, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get suppression: %w", err)
	}
	if out.Item == nil {
		return nil, suppression.ErrNotFound
	}

	var s domain.Suppression
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, fmt.Errorf("unmarshal suppression: %w", err)
	}
	return &s, nil
}

func (r *SuppressionRepo) List(ctx context.Context, f suppression.ListFilter) ([]domain.Suppression, int, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.table)}
	if f.Reason != "" {
		input.FilterExpression = aws.String("reason = :reason")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":reason": &types.AttributeValueMemberS{Value: f.Reason},
		}
	}

	var all []domain.Suppression
	var startKey map[string]types.AttributeValue
	for {
		input.ExclusiveStartKey = startKey
		out, err := r.db.Scan(ctx, input)
		if err != nil {
			return nil, 0, fmt.Errorf("list suppressions: %w", err)
		}
		for _, item := range out.Items {
			var s domain.Suppression
			if err := attributevalue.UnmarshalMap(item, &s); err != nil {
				return nil, 0, fmt.Errorf("unmarshal suppression: %w", err)
			}
			all = append(all, s)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	total := len(all)
	if f.Offset > 0 {
		if f.Offset >= total {
			return nil, total, nil
		}
		all = all[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (r *SuppressionRepo) Count(ctx context.Context) (int, error) {
	var count int
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.db.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("count suppressions: %w", err)
		}
		count += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return count, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
