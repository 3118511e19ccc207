package repository

import (
	"context"

	"vidtube/internal/model"
	"vidtube/internal/pagination"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUserNameOrEmail 注册前检查用户名或邮箱是否已被占用
func (r *UserRepository) ExistsByUserNameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_name = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// listBySubscription 通过订阅边列出用户资料
// joinCol 为要展示的一端（subscriber_id / channel_id），filterCol 为作用域一端
func (r *UserRepository) listBySubscription(ctx context.Context, joinCol, filterCol string, id int64, page pagination.Page) ([]model.User, int64, error) {
	base := r.db.WithContext(ctx).Table("subscriptions AS s").Where("s."+filterCol+" = ?", id)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.db.WithContext(ctx).Table("subscriptions AS s").
		Select("u.*").
		Joins("JOIN users u ON u.id = s."+joinCol).
		Where("s."+filterCol+" = ?", id).
		Order("s.created_at DESC").
		Order("s.id DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListSubscribers 某频道的订阅者
func (r *UserRepository) ListSubscribers(ctx context.Context, channelID int64, page pagination.Page) ([]model.User, int64, error) {
	return r.listBySubscription(ctx, "subscriber_id", "channel_id", channelID, page)
}

// ListSubscribedChannels 某用户订阅的频道
func (r *UserRepository) ListSubscribedChannels(ctx context.Context, subscriberID int64, page pagination.Page) ([]model.User, int64, error) {
	return r.listBySubscription(ctx, "channel_id", "subscriber_id", subscriberID, page)
}

// UserNames 批量查询用户名
func (r *UserRepository) UserNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Select("id", "user_name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.UserName
	}
	return names, nil
}
