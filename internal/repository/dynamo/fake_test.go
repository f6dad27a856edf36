package dynamo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo хранит элементы в памяти и понимает только условия
// attribute_exists / attribute_not_exists, которых достаточно Store.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
	// failWith, если задан, возвращается из любого вызова.
	failWith error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func keyString(key map[string]types.AttributeValue) string {
	var parts []string
	for name, v := range key {
		if n, ok := v.(*types.AttributeValueMemberN); ok {
			parts = append(parts, name+"="+n.Value)
		}
	}
	return strings.Join(parts, ",")
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[name]
	if !ok {
		t = map[string]map[string]types.AttributeValue{}
		f.tables[name] = t
	}
	return t
}

func (f *fakeDynamo) put(table, keyAttr string, item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(table)[keyString(map[string]types.AttributeValue{keyAttr: item[keyAttr]})] = item
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &dynamodb.GetItemOutput{Item: f.table(aws.ToString(in.TableName))[keyString(in.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	delete(f.table(aws.ToString(in.TableName)), keyString(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := &dynamodb.ScanOutput{}
	for _, item := range f.table(aws.ToString(in.TableName)) {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, ti := range in.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		var ok bool
		switch {
		case ti.ConditionCheck != nil:
			ok = f.holds(aws.ToString(ti.ConditionCheck.TableName), ti.ConditionCheck.Key, aws.ToString(ti.ConditionCheck.ConditionExpression))
		case ti.Put != nil:
			ok = f.holds(aws.ToString(ti.Put.TableName), f.keyOf(ti.Put.Item), aws.ToString(ti.Put.ConditionExpression))
		default:
			return nil, errors.New("fake: unsupported transact item")
		}
		if !ok {
			reasons[i].Code = aws.String("ConditionalCheckFailed")
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, ti := range in.TransactItems {
		if ti.Put != nil {
			f.table(aws.ToString(ti.Put.TableName))[keyString(f.keyOf(ti.Put.Item))] = ti.Put.Item
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeDynamo) keyOf(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"trail_id": item["trail_id"]}
}

func (f *fakeDynamo) holds(table string, key map[string]types.AttributeValue, cond string) bool {
	_, found := f.table(table)[keyString(key)]
	switch {
	case cond == "":
		return true
	case strings.HasPrefix(cond, "attribute_not_exists"):
		return !found
	case strings.HasPrefix(cond, "attribute_exists"):
		return found
	}
	return false
}
