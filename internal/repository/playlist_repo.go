package repository

import (
	"context"

	"vidtube/internal/composer"
	"vidtube/internal/model"
	"vidtube/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update 更新播放列表字段
func (r *PlaylistRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteCascade 删除播放列表及其条目
func (r *PlaylistRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Playlist{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByOwner 分页列出用户的播放列表
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]model.Playlist, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var playlists []model.Playlist
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&playlists).Error
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

// AddVideo 追加视频到列表末尾，已存在时不做任何修改，返回是否新增
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&model.PlaylistVideo{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error; err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   last + 1,
		})
		if result.Error != nil {
			return result.Error
		}
		added = result.RowsAffected > 0
		return nil
	})
	return added, err
}

// RemoveVideo 从列表移除视频，返回是否删除
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListVideoIDs 按加入顺序分页返回列表中的视频 ID
// filters 以 e 为视频表别名，计数与分页使用同一组条件，被过滤掉的条目不计入 total
func (r *PlaylistRepository) ListVideoIDs(ctx context.Context, playlistID int64, filters []composer.Filter, page pagination.Page) ([]int64, int64, error) {
	entries := func() *gorm.DB {
		q := r.db.WithContext(ctx).Table("playlist_videos AS pv").
			Joins("JOIN videos e ON e.id = pv.video_id").
			Joins("JOIN users u ON u.id = e.owner_id").
			Where("pv.playlist_id = ?", playlistID)
		return composer.Apply(q, filters)
	}

	var total int64
	if err := entries().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := entries().
		Order("pv.position ASC").Order("pv.id ASC").
		Offset(page.Offset()).Limit(page.Limit).
		Pluck("pv.video_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
