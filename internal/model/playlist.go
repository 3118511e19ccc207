package model

import "time"

// Playlist 播放列表模型
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:播放列表ID" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_playlists_owner_id;comment:创建者ID" json:"owner_id"`
	Name        string    `gorm:"size:200;not null;comment:名称" json:"name"`
	Description string    `gorm:"type:text;comment:描述" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p *Playlist) OwnerRef() int64 {
	return p.OwnerID
}

// PlaylistVideo 播放列表条目，同一视频在列表中只出现一次
type PlaylistVideo struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaylistID int64     `gorm:"not null;uniqueIndex:uq_playlist_video;index:idx_playlist_videos_position,priority:1;comment:播放列表ID" json:"playlist_id"`
	VideoID    int64     `gorm:"not null;uniqueIndex:uq_playlist_video;index:idx_playlist_videos_video_id;comment:视频ID" json:"video_id"`
	Position   int64     `gorm:"not null;default:0;index:idx_playlist_videos_position,priority:2;comment:追加顺序" json:"position"`
	CreatedAt  time.Time `gorm:"autoCreateTime;comment:加入时间" json:"created_at"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
