package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-users-api/internal/domain"
	"github.com/go-users-api/internal/pkg/id"
)

// CodeRepo manages one-time verification codes.
// PK: code_id (ULID). GSIs: code-index for verification-time lookup,
// user_id-index for invalidate-before-reissue.
//
// The repo does not enforce single-code-per-user; that invariant belongs to
// the auth service, which always calls DeleteAllForUser before Create.
type CodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCodeRepo(client *dynamodb.Client, tableName string) *CodeRepo {
	return &CodeRepo{client: client, tableName: tableName}
}

// Create inserts a new code row for the user.
func (r *CodeRepo) Create(ctx context.Context, userID, code string, expiresAt int64) (*domain.VerificationCode, error) {
	v := &domain.VerificationCode{
		CodeID:    id.New(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: expiresAt,
	}
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("marshal verification code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetByCode returns the code row matching the given code value exactly.
// Given the invalidate-before-create discipline, at most one live row per user
// matches; a collision with another user's code is resolved by the caller's
// ownership check.
func (r *CodeRepo) GetByCode(ctx context.Context, code string) (*domain.VerificationCode, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String("code-index"),
		KeyConditionExpression:   aws.String("#c = :v"),
		ExpressionAttributeNames: map[string]string{"#c": "code"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: code},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationCode
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteByCode removes the row holding the given code value and reports
// whether a row was actually removed.
func (r *CodeRepo) DeleteByCode(ctx context.Context, code string) (bool, error) {
	v, err := r.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          strKey("code_id", v.CodeID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

// DeleteAllForUser removes every code belonging to the user. Idempotent:
// succeeds when no codes exist.
func (r *CodeRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.tableName),
			IndexName:                aws.String("user_id-index"),
			KeyConditionExpression:   aws.String("#u = :v"),
			ExpressionAttributeNames: map[string]string{"#u": "user_id"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: userID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return err
		}
		for _, item := range out.Items {
			var v domain.VerificationCode
			if err := attributevalue.UnmarshalMap(item, &v); err != nil {
				return err
			}
			if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(r.tableName),
				Key:       strKey("code_id", v.CodeID),
			}); err != nil {
				return err
			}
		}
		if out.LastEvaluatedKey == nil {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}
