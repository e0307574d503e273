package db

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

// SchemaMeta stores the hash of the schema the database was last migrated
// to.
type SchemaMeta struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"not null;column:value"`
}

func (SchemaMeta) TableName() string { return "schema_meta" }

const schemaHashKey = "schema_hash"

// SchemaLifecycle detects schema staleness and reconciles the database
// with the current definition.
type SchemaLifecycle interface {
	// Reconcile compares the stored schema hash with the current one. On
	// mismatch it drops and recreates all tables. Development only; there
	// is no data-preserving migration path at this layer.
	Reconcile() error
}

type devSchemaLifecycle struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDevSchemaLifecycle(db *gorm.DB, log *logger.Logger) SchemaLifecycle {
	return &devSchemaLifecycle{db: db, log: log.With("service", "SchemaLifecycle")}
}

func (l *devSchemaLifecycle) Reconcile() error {
	currentHash := SchemaHash()

	// The meta table must exist before we can read the stored hash.
	if err := l.db.AutoMigrate(&SchemaMeta{}); err != nil {
		return fmt.Errorf("migrate schema_meta: %w", err)
	}

	var meta SchemaMeta
	err := l.db.Where("key = ?", schemaHashKey).First(&meta).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Fresh database.
	case err != nil:
		return fmt.Errorf("read schema hash: %w", err)
	case meta.Value == currentHash:
		if err := AutoMigrateAll(l.db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	default:
		l.log.Warn("schema definition changed, dropping all tables",
			"stored_hash", meta.Value, "current_hash", currentHash)
		if err := l.dropAll(); err != nil {
			return err
		}
	}

	if err := AutoMigrateAll(l.db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	meta = SchemaMeta{Key: schemaHashKey, Value: currentHash}
	if err := l.db.Save(&meta).Error; err != nil {
		return fmt.Errorf("store schema hash: %w", err)
	}
	l.log.Info("schema reconciled", "hash", currentHash)
	return nil
}

func (l *devSchemaLifecycle) dropAll() error {
	models := migratedModels()
	// Reverse dependency order.
	for i := len(models) - 1; i >= 0; i-- {
		if err := l.db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table for %T: %w", models[i], err)
		}
	}
	if err := l.db.Migrator().DropTable(&SchemaMeta{}); err != nil {
		return fmt.Errorf("drop schema_meta: %w", err)
	}
	return nil
}

// SchemaHash derives a content hash of the current schema definition from
// the migrated model set: table names, field names and gorm tags.
func SchemaHash() string {
	var sb strings.Builder
	for _, model := range migratedModels() {
		t := reflect.TypeOf(model).Elem()
		if tn, ok := model.(interface{ TableName() string }); ok {
			sb.WriteString(tn.TableName())
		} else {
			sb.WriteString(t.Name())
		}
		sb.WriteString("{")
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			sb.WriteString(f.Name)
			sb.WriteString(":")
			sb.WriteString(f.Type.String())
			sb.WriteString(":")
			sb.WriteString(f.Tag.Get("gorm"))
			sb.WriteString(";")
		}
		sb.WriteString("}\n")
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
