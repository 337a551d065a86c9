package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// documentRow is the shape of every collection table. The document body
// lives in the jsonb data column; id and partition_key are lifted into
// columns so point operations stay indexed.
type documentRow struct {
	ID           string            `gorm:"primaryKey;column:id"`
	PartitionKey string            `gorm:"column:partition_key;not null;index"`
	DocumentType string            `gorm:"column:document_type;index"`
	Data         datatypes.JSONMap `gorm:"column:data;type:jsonb;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at;default:now()"`
}

type PostgresParams struct {
	fx.In

	DatabaseURL string `name:"database_url"`
	Logger      *zap.Logger
}

// PostgresStore implements Store on top of a gorm/postgres connection,
// one table per logical collection.
type PostgresStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPostgresStore(p PostgresParams) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(p.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect document store: %w", err)
	}

	s := &PostgresStore{db: db, logger: p.Logger}
	if err := s.provision(); err != nil {
		return nil, err
	}
	return s, nil
}

// provision creates the collection tables if they do not exist yet.
// Safe to run on every startup.
func (s *PostgresStore) provision() error {
	for _, collection := range Collections() {
		if err := s.db.Table(collection).AutoMigrate(&documentRow{}); err != nil {
			return fmt.Errorf("failed to provision collection %s: %w", collection, err)
		}
		s.logger.Debug("provisioned collection", zap.String("collection", collection))
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, collection string, partitionKey string, rec Record) (Record, error) {
	row := documentRow{
		ID:           stringField(rec, "id"),
		PartitionKey: partitionKey,
		DocumentType: stringField(rec, "document_type"),
		Data:         datatypes.JSONMap(rec),
	}

	if err := s.db.WithContext(ctx).Table(collection).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return Record(row.Data), nil
}

func (s *PostgresStore) Read(ctx context.Context, collection string, id string, partitionKey string) (Record, error) {
	var row documentRow
	err := s.db.WithContext(ctx).Table(collection).
		Where("id = ? AND partition_key = ?", id, partitionKey).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Record(row.Data), nil
}

func (s *PostgresStore) Replace(ctx context.Context, collection string, id string, partitionKey string, rec Record) (Record, error) {
	result := s.db.WithContext(ctx).Table(collection).
		Where("id = ? AND partition_key = ?", id, partitionKey).
		Updates(map[string]any{
			"data":          datatypes.JSONMap(rec),
			"document_type": stringField(rec, "document_type"),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to replace document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection string, id string, partitionKey string) error {
	result := s.db.WithContext(ctx).Table(collection).
		Where("id = ? AND partition_key = ?", id, partitionKey).
		Delete(&documentRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, collection string, q Query) ([]Record, error) {
	tx := s.db.WithContext(ctx).Table(collection)

	if q.PartitionKey != "" {
		tx = tx.Where("partition_key = ?", q.PartitionKey)
	}
	for field, value := range q.Filters {
		if field == "document_type" {
			tx = tx.Where("document_type = ?", value)
			continue
		}
		tx = tx.Where(datatypes.JSONQuery("data").Equals(value, field))
	}
	if q.OrderByDesc != "" {
		// Order fields are fixed strings chosen by repositories, never
		// client input.
		tx = tx.Order(fmt.Sprintf("data->>'%s' DESC", q.OrderByDesc))
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []documentRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record(row.Data))
	}
	return records, nil
}

func stringField(rec Record, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}
