package dto

import (
	"time"

	"vidtube/internal/pagination"
)

// PlaylistCreateRequest 创建播放列表请求
type PlaylistCreateRequest struct {
	Name        string `json:"name" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// PlaylistUpdateRequest 更新播放列表请求
type PlaylistUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// PlaylistInfo 播放列表信息
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistDetail 播放列表详情，视频按加入顺序排列
type PlaylistDetail struct {
	PlaylistInfo
	Videos     []VideoView     `json:"videos"`
	Pagination pagination.Meta `json:"pagination"`
}

// PlaylistListData 播放列表分页数据
type PlaylistListData struct {
	Playlists  []PlaylistInfo  `json:"playlists"`
	Pagination pagination.Meta `json:"pagination"`
}

// PlaylistEntryData 播放列表条目变更结果
type PlaylistEntryData struct {
	PlaylistID int64 `json:"playlist_id"`
	VideoID    int64 `json:"video_id"`
	Changed    bool  `json:"changed"`
}
