package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store is the slice of DynamoService the domain services consume. Tests
// substitute an in-memory implementation.
type Store interface {
	PutItem(ctx context.Context, tableName string, item interface{}) error
	PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, keyAttr string) error
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, out interface{}) error
	DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error
	UpdateItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, updateExpression string, expressionValues map[string]types.AttributeValue, expressionNames map[string]string) error
	QueryByPartition(ctx context.Context, tableName, keyName, keyValue string, limit int32, ascending bool, out interface{}) error
	ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, out interface{}) error
	TransactPutDelete(ctx context.Context, putTable string, putItem interface{}, deleteTable string, deleteKey map[string]types.AttributeValue) error
}

type DynamoService struct {
	Client *dynamodb.Client
}

var _ Store = (*DynamoService)(nil)

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// StringKey builds a single-attribute string key map
func StringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// PutItem writes the full item, replacing any existing record
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

// PutItemIfAbsent writes the item only when no record exists at its key,
// returning ErrAlreadyExists on collision. This is the conditional-write
// upgrade for the deterministic-pair-id creation paths.
func (ds *DynamoService) PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, keyAttr string) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	condition := "attribute_not_exists(#pk)"
	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                &tableName,
		Item:                     marshaledItem,
		ConditionExpression:      &condition,
		ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to conditionally put item in table '%s': %w", tableName, err)
	}
	return nil
}

// GetItem retrieves and unmarshals an item, returning ErrNotFound when absent
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, out interface{}) error {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}

	if output.Item == nil {
		return ErrNotFound
	}

	if err := attributevalue.UnmarshalMap(output.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item from table '%s': %w", tableName, err)
	}
	return nil
}

// DeleteItem removes an item; deleting an absent key is not an error
func (ds *DynamoService) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", tableName, err)
	}
	return nil
}

// UpdateItem applies an update expression to one item. The chat document's
// typing presence and message preview go through here as point writes, so a
// concurrent writer is never clobbered by a stale whole-document put.
func (ds *DynamoService) UpdateItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, updateExpression string, expressionValues map[string]types.AttributeValue, expressionNames map[string]string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:                &tableName,
		Key:                      key,
		UpdateExpression:         &updateExpression,
		ExpressionAttributeNames: expressionNames,
	}
	// REMOVE-only expressions carry no values; the API rejects an empty map.
	if len(expressionValues) > 0 {
		input.ExpressionAttributeValues = expressionValues
	}

	if _, err := ds.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to update item in table '%s': %w", tableName, err)
	}
	return nil
}

// QueryByPartition fetches all items in one partition, sorted by the range
// key in the requested direction.
func (ds *DynamoService) QueryByPartition(ctx context.Context, tableName, keyName, keyValue string, limit int32, ascending bool, out interface{}) error {
	keyCondition := "#pk = :pk"
	expressionValues := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: keyValue},
	}
	expressionNames := map[string]string{
		"#pk": keyName, // avoids DynamoDB reserved word conflicts
	}

	input := &dynamodb.QueryInput{
		TableName:                 &tableName,
		KeyConditionExpression:    &keyCondition,
		ExpressionAttributeValues: expressionValues,
		ExpressionAttributeNames:  expressionNames,
		ScanIndexForward:          aws.Bool(ascending),
	}
	if limit > 0 {
		input.Limit = &limit
	}

	output, err := ds.Client.Query(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to query table '%s': %w", tableName, err)
	}

	if err := attributevalue.UnmarshalListOfMaps(output.Items, out); err != nil {
		return fmt.Errorf("failed to unmarshal query result: %w", err)
	}
	return nil
}

// ScanWithFilter scans the full table and keeps the items the callback
// accepts. Fine at this data size; the matching browser filters the whole
// user list anyway.
func (ds *DynamoService) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, out interface{}) error {
	output, err := ds.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &tableName,
	})
	if err != nil {
		return fmt.Errorf("failed to scan table '%s': %w", tableName, err)
	}

	var filteredItems []map[string]types.AttributeValue
	for _, item := range output.Items {
		if filterFunc == nil || filterFunc(item) {
			filteredItems = append(filteredItems, item)
		}
	}

	if err := attributevalue.UnmarshalListOfMaps(filteredItems, out); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

// TransactPutDelete writes one item and deletes another atomically. Used by
// the request-accept path so the chat and the request removal commit
// together.
func (ds *DynamoService) TransactPutDelete(ctx context.Context, putTable string, putItem interface{}, deleteTable string, deleteKey map[string]types.AttributeValue) error {
	marshaledItem, err := attributevalue.MarshalMap(putItem)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: &putTable, Item: marshaledItem}},
			{Delete: &types.Delete{TableName: &deleteTable, Key: deleteKey}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to transact put+delete (%s, %s): %w", putTable, deleteTable, err)
	}
	return nil
}

// ExtractString safely extracts a string attribute from a raw item
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}
