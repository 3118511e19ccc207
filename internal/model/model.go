package model

// All 需要迁移的全部模型
func All() []any {
	return []any{
		&User{},
		&Video{},
		&Comment{},
		&Tweet{},
		&Playlist{},
		&PlaylistVideo{},
		&Like{},
		&Subscription{},
	}
}
