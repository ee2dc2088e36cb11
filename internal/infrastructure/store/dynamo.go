package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore implements DocumentStore on a single DynamoDB table with
// "collection" as partition key and "id" as sort key. Document fields are
// stored as native attributes so FindByField can filter server-side.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

func (ds *DynamoStore) Put(ctx context.Context, collection, id string, doc any) error {
	fields, err := toFieldMap(doc)
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	item["collection"] = &types.AttributeValueMemberS{Value: collection}
	item["id"] = &types.AttributeValueMemberS{Value: id}

	_, err = ds.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ds.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put document: %w", err)
	}
	return nil
}

func (ds *DynamoStore) Get(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	result, err := ds.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.tableName),
		Key: map[string]types.AttributeValue{
			"collection": &types.AttributeValueMemberS{Value: collection},
			"id":         &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get document: %w", err)
	}
	if result.Item == nil {
		return nil, false, nil
	}

	doc, err := itemToJSON(result.Item)
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (ds *DynamoStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	result, err := ds.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(ds.tableName),
		KeyConditionExpression: aws.String("#c = :c"),
		ExpressionAttributeNames: map[string]string{
			"#c": "collection",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: collection},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]json.RawMessage, 0, len(result.Items))
	for _, item := range result.Items {
		doc, err := itemToJSON(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (ds *DynamoStore) FindByField(ctx context.Context, collection, field, value string) ([]json.RawMessage, error) {
	result, err := ds.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(ds.tableName),
		KeyConditionExpression: aws.String("#c = :c"),
		FilterExpression:       aws.String("#f = :v"),
		ExpressionAttributeNames: map[string]string{
			"#c": "collection",
			"#f": field,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: collection},
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	docs := make([]json.RawMessage, 0, len(result.Items))
	for _, item := range result.Items {
		doc, err := itemToJSON(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (ds *DynamoStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	result, err := ds.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ds.tableName),
		Key: map[string]types.AttributeValue{
			"collection": &types.AttributeValueMemberS{Value: collection},
			"id":         &types.AttributeValueMemberS{Value: id},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return len(result.Attributes) > 0, nil
}

// toFieldMap round-trips a typed document through JSON so attributevalue
// sees plain maps and slices.
func toFieldMap(doc any) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	return fields, nil
}

func itemToJSON(item map[string]types.AttributeValue) (json.RawMessage, error) {
	var fields map[string]any
	if err := attributevalue.UnmarshalMap(item, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	delete(fields, "collection")
	return json.Marshal(fields)
}
