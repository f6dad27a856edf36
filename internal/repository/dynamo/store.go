// Package dynamo хранит тропы в DynamoDB.
//
// Ссылочная целостность и уникальность TrailID проверяются внутри одной транзакции
// TransactWriteItems: ConditionCheck на таблицу локаций и Put с условием на таблицу троп.
// Причина отмены транзакции переводится в ошибки пакета repository.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"trails/internal/model"
	"trails/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API - подмножество клиента DynamoDB, которое использует Store.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables задает имена таблиц.
type Tables struct {
	Trails    string
	Locations string
}

// Store реализует операции над тропами поверх DynamoDB.
type Store struct {
	client API
	tables Tables
}

// New создает Store.
func New(client API, tables Tables) *Store {
	return &Store{client: client, tables: tables}
}

// индексы элементов транзакции записи
const (
	locationCheckIndex = 0
	trailPutIndex      = 1
)

func trailKey(id int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"trail_id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
	}
}

func locationKey(id int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
	}
}

// List возвращает все тропы. Порядок определяется DynamoDB.
func (s *Store) List(ctx context.Context) ([]model.Trail, error) {
	trails := []model.Trail{}
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.tables.Trails),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ошибка при получении списка троп: %w", err)
		}
		var batch []model.Trail
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("ошибка разбора списка троп: %w", err)
		}
		trails = append(trails, batch...)
	}
	return trails, nil
}

// GetByID возвращает тропу или repository.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int) (*model.Trail, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tables.Trails),
		Key:            trailKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тропы: %w", err)
	}
	if out.Item == nil {
		return nil, repository.ErrNotFound
	}
	var trail model.Trail
	if err := attributevalue.UnmarshalMap(out.Item, &trail); err != nil {
		return nil, fmt.Errorf("ошибка разбора тропы: %w", err)
	}
	return &trail, nil
}

// IDAvailable сообщает, свободен ли TrailID.
func (s *Store) IDAvailable(ctx context.Context, id int) (bool, error) {
	found, err := s.exists(ctx, s.tables.Trails, trailKey(id))
	return !found, err
}

// LocationExists сообщает, есть ли локация с указанным идентификатором.
func (s *Store) LocationExists(ctx context.Context, id int) (bool, error) {
	return s.exists(ctx, s.tables.Locations, locationKey(id))
}

func (s *Store) exists(ctx context.Context, table string, key map[string]types.AttributeValue) (bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("ошибка чтения из таблицы %s: %w", table, err)
	}
	return out.Item != nil, nil
}

// Create атомарно проверяет локацию и записывает тропу, если TrailID свободен.
func (s *Store) Create(ctx context.Context, trail *model.Trail) error {
	err := s.write(ctx, trail, "attribute_not_exists(trail_id)")
	return mapCreateError(err)
}

// Update полностью заменяет тропу с указанным идентификатором.
// Возвращает repository.ErrNotFound, если тропы нет.
func (s *Store) Update(ctx context.Context, id int, trail *model.Trail) error {
	row := *trail
	row.ID = id
	err := s.write(ctx, &row, "attribute_exists(trail_id)")
	return mapUpdateError(err)
}

// Delete удаляет тропу. Отсутствие тропы ошибкой не считается.
func (s *Store) Delete(ctx context.Context, id int) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tables.Trails),
		Key:       trailKey(id),
	})
	if err != nil {
		return fmt.Errorf("не удалось удалить тропу: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, trail *model.Trail, putCondition string) error {
	item, err := attributevalue.MarshalMap(trail)
	if err != nil {
		return fmt.Errorf("ошибка сериализации тропы: %w", err)
	}
	items := make([]types.TransactWriteItem, 2)
	items[locationCheckIndex] = types.TransactWriteItem{
		ConditionCheck: &types.ConditionCheck{
			TableName:           aws.String(s.tables.Locations),
			Key:                 locationKey(trail.LocationID),
			ConditionExpression: aws.String("attribute_exists(id)"),
		},
	}
	items[trailPutIndex] = types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.tables.Trails),
			Item:                item,
			ConditionExpression: aws.String(putCondition),
		},
	}
	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	return err
}

// failedIndex возвращает индекс элемента транзакции, чье условие не выполнилось, или -1.
func failedIndex(err error) int {
	var txErr *types.TransactionCanceledException
	if !errors.As(err, &txErr) {
		return -1
	}
	for i, reason := range txErr.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return i
		}
	}
	return -1
}

func mapCreateError(err error) error {
	if err == nil {
		return nil
	}
	switch failedIndex(err) {
	case locationCheckIndex:
		return repository.ErrUnknownLocation
	case trailPutIndex:
		return repository.ErrDuplicateTrailID
	}
	return fmt.Errorf("не удалось создать тропу: %w", err)
}

func mapUpdateError(err error) error {
	if err == nil {
		return nil
	}
	switch failedIndex(err) {
	case locationCheckIndex:
		return repository.ErrUnknownLocation
	case trailPutIndex:
		return repository.ErrNotFound
	}
	return fmt.Errorf("не удалось обновить тропу: %w", err)
}

// Locations читает таблицу локаций.
type Locations struct {
	client API
	table  string
}

// NewLocations создает читателя таблицы локаций.
func NewLocations(client API, table string) *Locations {
	return &Locations{client: client, table: table}
}

// FindAll возвращает все локации.
func (l *Locations) FindAll(ctx context.Context) ([]model.Location, error) {
	locations := []model.Location{}
	paginator := dynamodb.NewScanPaginator(l.client, &dynamodb.ScanInput{
		TableName: aws.String(l.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ошибка при получении списка локаций: %w", err)
		}
		var batch []model.Location
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("ошибка разбора списка локаций: %w", err)
		}
		locations = append(locations, batch...)
	}
	return locations, nil
}

// GetByID возвращает локацию или repository.ErrNotFound.
func (l *Locations) GetByID(ctx context.Context, id int) (*model.Location, error) {
	out, err := l.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(l.table),
		Key:       locationKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении локации: %w", err)
	}
	if out.Item == nil {
		return nil, repository.ErrNotFound
	}
	var location model.Location
	if err := attributevalue.UnmarshalMap(out.Item, &location); err != nil {
		return nil, fmt.Errorf("ошибка разбора локации: %w", err)
	}
	return &location, nil
}
