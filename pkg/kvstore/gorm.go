package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coffee_shop/pkg/db"
)

type Entry struct {
	Key       string    `gorm:"column:name;primaryKey;size:191"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// Gorm keeps entries in a kv_entries table on sqlite or postgres.
type Gorm struct {
	DB *gorm.DB
}

func NewGorm(ctx context.Context, gdb *gorm.DB) (*Gorm, error) {
	if err := gdb.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &Gorm{DB: gdb}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) (string, error) {
	var e Entry
	if err := g.DB.WithContext(ctx).Where("name = ?", key).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return e.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key, value string) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (g *Gorm) Remove(ctx context.Context, key string) error {
	return g.DB.WithContext(ctx).Where("name = ?", key).Delete(&Entry{}).Error
}

func (g *Gorm) Close() error {
	return db.Close(g.DB)
}
