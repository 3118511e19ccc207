// Package testutil 测试辅助：内存 SQLite 数据库与常用种子数据
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vidtube/internal/model"
)

var dbSeq atomic.Int64

// NewDB 为每个测试创建独立的内存数据库并完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 共享缓存保证同一测试内的多个连接看到同一个库，名字递增保证测试之间隔离
	dsn := fmt.Sprintf("file:vidtube_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite 同一时刻只允许一个写者，单连接避免测试中的 SQLITE_LOCKED
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))

	return db
}

// NewFileDB 创建临时目录下的文件数据库，允许多个连接并发读写
// WAL 加 busy_timeout 让并发写者排队而不是立即报错，用于验证并发下的唯一约束
func NewFileDB(t *testing.T, maxConns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vidtube.db")
	dsn := "file:" + path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))

	return db
}

// SeedUser 插入一个用户
func SeedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		UserName: username,
		FullName: username + " full",
		Email:    username + "@example.com",
		Password: "hash",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedVideo 插入一个已公开的视频，createdAt 由调用方指定以保证排序可复现
func SeedVideo(t *testing.T, db *gorm.DB, ownerID int64, title string, createdAt time.Time) *model.Video {
	t.Helper()
	v := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  title + " description",
		VideoURL:     "http://blob/" + title + ".mp4",
		ThumbnailURL: "http://blob/" + title + ".jpg",
		Duration:     12.5,
		IsPublished:  true,
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    createdAt.UTC(),
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

// SeedComment 插入一条评论
func SeedComment(t *testing.T, db *gorm.DB, videoID, ownerID int64, content string, createdAt time.Time) *model.Comment {
	t.Helper()
	c := &model.Comment{
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// SeedTweet 插入一条动态
func SeedTweet(t *testing.T, db *gorm.DB, ownerID int64, content string, createdAt time.Time) *model.Tweet {
	t.Helper()
	tw := &model.Tweet{
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}
	require.NoError(t, db.Create(tw).Error)
	return tw
}

// SeedLike 插入一条点赞边
func SeedLike(t *testing.T, db *gorm.DB, likerID int64, target model.LikeTarget, targetID int64) {
	t.Helper()
	require.NoError(t, db.Create(&model.Like{LikerID: likerID, TargetType: target, TargetID: targetID}).Error)
}

// SeedSubscription 插入一条订阅边
func SeedSubscription(t *testing.T, db *gorm.DB, subscriberID, channelID int64) {
	t.Helper()
	require.NoError(t, db.Create(&model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}).Error)
}

// Base 测试用的固定起始时间
var Base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// At 返回 Base 之后第 n 分钟
func At(n int) time.Time {
	return Base.Add(time.Duration(n) * time.Minute)
}
