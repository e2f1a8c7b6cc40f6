package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the single row the GormPersister keeps per namespace key.
type Record struct {
	SessionKey string `gorm:"column:session_key;primaryKey;size:128"`
	Payload    string `gorm:"type:text;not null"`
	UpdatedAt  time.Time
}

func (Record) TableName() string { return "session_records" }

// GormPersister stores the session in a SQL table through gorm.
type GormPersister struct {
	db *gorm.DB
}

// NewGormPersister creates the session_records table if needed.
func NewGormPersister(db *gorm.DB) (*GormPersister, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("session: migrate session_records: %w", err)
	}
	return &GormPersister{db: db}, nil
}

func (p *GormPersister) Load(ctx context.Context, key string) ([]byte, error) {
	var rec Record
	err := p.db.WithContext(ctx).First(&rec, "session_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: load record: %w", err)
	}
	return []byte(rec.Payload), nil
}

func (p *GormPersister) Save(ctx context.Context, key string, data []byte) error {
	rec := Record{SessionKey: key, Payload: string(data), UpdatedAt: time.Now().UTC()}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("session: save record: %w", err)
	}
	return nil
}

func (p *GormPersister) Clear(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Delete(&Record{}, "session_key = ?", key).Error; err != nil {
		return fmt.Errorf("session: delete record: %w", err)
	}
	return nil
}

func (p *GormPersister) Name() string { return "database" }
