package services

import (
	"fmt"
	"testing"
	"time"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 用内存 sqlite 顶替全局连接，并清空缓存单例
func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库随连接销毁，必须限制为单连接
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.Note{},
		&models.Comment{},
		&models.BlogPost{},
		&models.Reaction{},
	))

	db.DB = gdb
	utils.GetCache().Purge()
}

// seedNotes 造 n 条公开留言，created_at 间隔 1 分钟，下标越大越新
func seedNotes(t *testing.T, n int) []models.Note {
	t.Helper()

	base := time.Now().Add(-time.Duration(n) * time.Minute)
	notes := make([]models.Note, 0, n)
	for i := 0; i < n; i++ {
		note, err := CreateNote(CreateNoteInput{Content: fmt.Sprintf("第 %d 条留言", i)})
		require.NoError(t, err)

		createdAt := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.DB.Model(note).Update("created_at", createdAt).Error)
		note.CreatedAt = createdAt
		notes = append(notes, *note)
	}
	return notes
}
