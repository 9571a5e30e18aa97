package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// documentRow holds one document of any collection as a JSON body. The record id
// lives in its own column; every other field is matched with JSON path queries.
type documentRow struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement"`
	Collection string         `gorm:"column:collection;not null;index"`
	DocID      string         `gorm:"column:doc_id;not null;uniqueIndex"`
	Body       datatypes.JSON `gorm:"column:body;not null"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (documentRow) TableName() string {
	return "documents"
}

// GormStore keeps documents in a relational database (Postgres in deployments,
// SQLite for local runs and tests).
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore migrates the documents table. SQLite is limited to one open
// connection so an in-memory database is shared by every caller.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db.Dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("migrate documents: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Collection(name string) Collection {
	return &gormCollection{db: s.DB, name: name}
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(_ context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) Backend() string { return s.DB.Dialector.Name() }

type gormCollection struct {
	db   *gorm.DB
	name string
}

func (c *gormCollection) where(tx *gorm.DB, filter Filter) *gorm.DB {
	q := tx.Where("collection = ?", c.name)
	for _, k := range sortedKeys(filter) {
		v := filter[k]
		if k == KeyID {
			q = q.Where("doc_id = ?", fmt.Sprint(v))
			continue
		}
		q = q.Where(datatypes.JSONQuery("body").Equals(v, k))
	}
	return q
}

func (c *gormCollection) Find(ctx context.Context, filter Filter, limit int) ([]Document, error) {
	q := c.where(c.db.WithContext(ctx), filter).Order("id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []documentRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *gormCollection) FindOne(ctx context.Context, filter Filter) (Document, error) {
	var row documentRow
	err := c.where(c.db.WithContext(ctx), filter).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, err
	}
	return decodeRow(row)
}

func (c *gormCollection) InsertOne(ctx context.Context, doc Document) error {
	body := make(Document, len(doc))
	for k, v := range doc {
		body[k] = v
	}
	docID, _ := body[KeyID].(string)
	if docID == "" {
		docID = uuid.New().String()
	}
	delete(body, KeyID)
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	var existing int64
	if err := c.db.WithContext(ctx).Model(&documentRow{}).Where("doc_id = ?", docID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, docID)
	}
	return c.db.WithContext(ctx).Create(&documentRow{
		Collection: c.name,
		DocID:      docID,
		Body:       datatypes.JSON(b),
	}).Error
}

func (c *gormCollection) UpdateOne(ctx context.Context, filter Filter, set Document) (int64, error) {
	var matched int64
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := c.where(tx, filter).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		matched = 1
		if len(set) == 0 {
			return nil
		}
		doc, err := decodeRow(row)
		if err != nil {
			return err
		}
		for k, v := range set {
			doc[k] = v
		}
		delete(doc, KeyID)
		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		return tx.Model(&documentRow{}).Where("id = ?", row.ID).Updates(map[string]any{
			"body":       datatypes.JSON(b),
			"updated_at": time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return matched, nil
}

func (c *gormCollection) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	var deleted int64
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := c.where(tx, filter).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		res := tx.Delete(&documentRow{}, row.ID)
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func decodeRow(row documentRow) (Document, error) {
	doc := Document{}
	if len(row.Body) > 0 {
		if err := json.Unmarshal(row.Body, &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", row.DocID, err)
		}
	}
	doc[KeyID] = row.DocID
	return doc, nil
}
