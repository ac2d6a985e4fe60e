package database

import (
	"time"

	"gorm.io/datatypes"
)

const schemaVersionKey = "schema_version"

// KVEntry is one persisted collection, stored as a JSON document under its key
type KVEntry struct {
	Key       string         `gorm:"primaryKey"    json:"key"`
	Value     datatypes.JSON `gorm:"not null"      json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for KVEntry
func (KVEntry) TableName() string {
	return "kv_entries"
}

// Metadata holds bookkeeping values such as the schema version
type Metadata struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null"   json:"value"`
	UpdatedAt time.Time `                  json:"updated_at"`
}

// TableName specifies the table name for Metadata
func (Metadata) TableName() string {
	return "metadata"
}
