package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sangkips/remodela-api/internal/config"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	gormlogger "gorm.io/gorm/logger"
)

func TestSeedAdmin(t *testing.T) {
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "seed.db"), zap.NewNop(), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	cfg := config.AdminConfig{Email: "admin@remodela.cr", Password: "secreto123", Name: "Admin"}
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, cfg, zap.NewNop()))
	require.NoError(t, SeedAdmin(ctx, db, cfg, zap.NewNop()))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@remodela.cr", users[0].Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secreto123")))
}

func TestSeedAdmin_SkipsWithoutCredentials(t *testing.T) {
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "seed.db"), zap.NewNop(), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, SeedAdmin(context.Background(), db, config.AdminConfig{}, zap.NewNop()))

	var count int64
	db.Model(&entity.User{}).Count(&count)
	assert.Zero(t, count)
}
