package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SubscriberRepo implements suppression.SubscriberRepository against the
// subscriber table, which this pipeline only ever deletes from.
type SubscriberRepo struct {
	db    *dynamodb.Client
	table string
}

// NewSubscriberRepo creates a DynamoDB-backed subscriber repository.
func NewSubscriberRepo(db *dynamodb.Client, table string) *SubscriberRepo {
	return &SubscriberRepo{db: db, table: table}
}

// DeleteByEmail removes the subscriber record for an address. DynamoDB
// deletes are idempotent: deleting an absent key succeeds, which is exactly
// the contract suppression needs.
func (r *SubscriberRepo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return fmt.Errorf("delete subscriber %s: %w", email, err)
	}
	return nil
}
