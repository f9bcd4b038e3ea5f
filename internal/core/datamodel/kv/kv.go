package kv

import "time"

// Entry is a row of the local key/value store.
type Entry struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string {
	return "kv_store"
}
