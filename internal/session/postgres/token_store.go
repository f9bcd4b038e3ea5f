package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/crm-console/internal/core/datamodel/kv"
	"github.com/frahmantamala/crm-console/internal/session"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenStore keeps the bearer token in the kv_store table. Works on both
// the sqlite and postgres dialects.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) session.TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	var entry kv.Entry
	err := s.db.WithContext(ctx).Where("name = ?", session.TokenKey).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	entry := kv.Entry{Name: session.TokenKey, Value: token, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("name = ?", session.TokenKey).Delete(&kv.Entry{}).Error
}
