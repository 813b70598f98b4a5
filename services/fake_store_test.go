package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"matrimony_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeStore is an in-memory Store used by the service tests. Items are held
// in marshaled attribute-map form so the same dynamodbav tags are exercised
// as against the real table.
type fakeStore struct {
	tables map[string]map[string]map[string]types.AttributeValue
	order  map[string][]string
}

var fakeTableKeys = map[string][]string{
	models.UsersTable:        {"uid"},
	models.ChatRequestsTable: {"requestId"},
	models.ChatsTable:        {"chatId"},
	models.MessagesTable:     {"chatId", "createdAt"},
	models.InterestsTable:    {"interestId"},
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables: map[string]map[string]map[string]types.AttributeValue{},
		order:  map[string][]string{},
	}
}

func (f *fakeStore) compositeKey(tableName string, attrs map[string]types.AttributeValue) string {
	parts := make([]string, 0, 2)
	for _, name := range fakeTableKeys[tableName] {
		parts = append(parts, ExtractString(attrs, name))
	}
	return strings.Join(parts, "|")
}

func (f *fakeStore) put(tableName, key string, item map[string]types.AttributeValue) {
	if f.tables[tableName] == nil {
		f.tables[tableName] = map[string]map[string]types.AttributeValue{}
	}
	if _, exists := f.tables[tableName][key]; !exists {
		f.order[tableName] = append(f.order[tableName], key)
	}
	f.tables[tableName][key] = item
}

func (f *fakeStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	f.put(tableName, f.compositeKey(tableName, marshaled), marshaled)
	return nil
}

func (f *fakeStore) PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, keyAttr string) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	key := f.compositeKey(tableName, marshaled)
	if _, exists := f.tables[tableName][key]; exists {
		return ErrAlreadyExists
	}
	f.put(tableName, key, marshaled)
	return nil
}

func (f *fakeStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, out interface{}) error {
	item, exists := f.tables[tableName][f.compositeKey(tableName, key)]
	if !exists {
		return ErrNotFound
	}
	return attributevalue.UnmarshalMap(item, out)
}

func (f *fakeStore) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	composite := f.compositeKey(tableName, key)
	if _, exists := f.tables[tableName][composite]; exists {
		delete(f.tables[tableName], composite)
		for i, k := range f.order[tableName] {
			if k == composite {
				f.order[tableName] = append(f.order[tableName][:i], f.order[tableName][i+1:]...)
				break
			}
		}
	}
	return nil
}

// UpdateItem interprets the SET/REMOVE expressions the services actually
// issue. Like DynamoDB, a nested SET fails when the parent attribute is not
// a map; unlike DynamoDB it does not upsert, since the services only update
// records they have just read.
func (f *fakeStore) UpdateItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, updateExpression string, expressionValues map[string]types.AttributeValue, expressionNames map[string]string) error {
	item, exists := f.tables[tableName][f.compositeKey(tableName, key)]
	if !exists {
		return ErrNotFound
	}

	expr := updateExpression
	removePart := ""
	if i := strings.Index(expr, "REMOVE"); i >= 0 {
		removePart = strings.TrimSpace(expr[i+len("REMOVE"):])
		expr = expr[:i]
	}
	setPart := ""
	if i := strings.Index(expr, "SET"); i >= 0 {
		setPart = strings.TrimSpace(expr[i+len("SET"):])
	}

	if setPart != "" {
		for _, assignment := range strings.Split(setPart, ",") {
			sides := strings.SplitN(assignment, "=", 2)
			if len(sides) != 2 {
				return fmt.Errorf("malformed update expression %q", updateExpression)
			}
			value, ok := expressionValues[strings.TrimSpace(sides[1])]
			if !ok {
				return fmt.Errorf("missing expression value in %q", updateExpression)
			}
			if err := setAttrPath(item, resolveAttrPath(sides[0], expressionNames), value); err != nil {
				return err
			}
		}
	}
	for _, token := range strings.Split(removePart, ",") {
		if token = strings.TrimSpace(token); token != "" {
			removeAttrPath(item, resolveAttrPath(token, expressionNames))
		}
	}
	return nil
}

func resolveAttrPath(raw string, names map[string]string) []string {
	segments := strings.Split(strings.TrimSpace(raw), ".")
	for i, segment := range segments {
		if strings.HasPrefix(segment, "#") {
			segments[i] = names[segment]
		}
	}
	return segments
}

func setAttrPath(item map[string]types.AttributeValue, path []string, value types.AttributeValue) error {
	if len(path) == 1 {
		item[path[0]] = value
		return nil
	}
	child, ok := item[path[0]].(*types.AttributeValueMemberM)
	if !ok {
		return fmt.Errorf("document path %q is not a map", path[0])
	}
	return setAttrPath(child.Value, path[1:], value)
}

func removeAttrPath(item map[string]types.AttributeValue, path []string) {
	if len(path) == 1 {
		delete(item, path[0])
		return
	}
	if child, ok := item[path[0]].(*types.AttributeValueMemberM); ok {
		removeAttrPath(child.Value, path[1:])
	}
}

func (f *fakeStore) QueryByPartition(ctx context.Context, tableName, keyName, keyValue string, limit int32, ascending bool, out interface{}) error {
	var items []map[string]types.AttributeValue
	for _, key := range f.order[tableName] {
		item := f.tables[tableName][key]
		if ExtractString(item, keyName) == keyValue {
			items = append(items, item)
		}
	}

	keys := fakeTableKeys[tableName]
	if len(keys) == 2 {
		rangeKey := keys[1]
		sort.SliceStable(items, func(i, j int) bool {
			if ascending {
				return ExtractString(items[i], rangeKey) < ExtractString(items[j], rangeKey)
			}
			return ExtractString(items[i], rangeKey) > ExtractString(items[j], rangeKey)
		})
	}

	if limit > 0 && int(limit) < len(items) {
		items = items[:limit]
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}

func (f *fakeStore) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, out interface{}) error {
	var items []map[string]types.AttributeValue
	for _, key := range f.order[tableName] {
		item := f.tables[tableName][key]
		if filterFunc == nil || filterFunc(item) {
			items = append(items, item)
		}
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}

func (f *fakeStore) TransactPutDelete(ctx context.Context, putTable string, putItem interface{}, deleteTable string, deleteKey map[string]types.AttributeValue) error {
	if err := f.PutItem(ctx, putTable, putItem); err != nil {
		return err
	}
	return f.DeleteItem(ctx, deleteTable, deleteKey)
}

func (f *fakeStore) count(tableName string) int {
	return len(f.tables[tableName])
}
