package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"vidtube/internal/api/dto"
	apperrors "vidtube/internal/errors"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
	"vidtube/pkg/utils"
)

var (
	ErrUserNotFound   = apperrors.NotFound("用户不存在")
	ErrUsernameExists = apperrors.Conflict("用户名或邮箱已存在")
)

type UserService struct {
	userRepo *repository.UserRepository
	subRepo  *repository.SubscriptionRepository
}

func NewUserService(userRepo *repository.UserRepository, subRepo *repository.SubscriptionRepository) *UserService {
	return &UserService{userRepo: userRepo, subRepo: subRepo}
}

// Register 用户注册
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(req.UserName))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByUserNameOrEmail(ctx, username, email)
	if err != nil {
		return nil, storeErr("check user", err, nil)
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("hash password").WithCause(err)
	}

	user := &model.User{
		UserName: username,
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: hashedPassword,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 并发注册时唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, storeErr("create user", err, nil)
	}

	info := toUserInfo(user)
	return &info, nil
}

// ChannelProfile 频道主页：公开资料 + 订阅者数 + 已订阅数 + 观看者是否已订阅
func (s *UserService) ChannelProfile(ctx context.Context, viewerID *int64, username string) (*dto.ChannelProfile, error) {
	user, err := s.userRepo.GetByUserName(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, storeErr("get user", err, ErrUserNotFound)
	}

	profile := &dto.ChannelProfile{UserInfo: toUserInfo(user)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.subRepo.CountSubscribers(gctx, user.ID)
		profile.SubscribersCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.subRepo.CountSubscribedTo(gctx, user.ID)
		profile.SubscribedToCount = n
		return err
	})
	if viewerID != nil {
		g.Go(func() error {
			ok, err := s.subRepo.Exists(gctx, *viewerID, user.ID)
			profile.IsSubscribed = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeErr("compose channel profile", err, nil)
	}

	return profile, nil
}

func toUserInfo(u *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:       u.ID,
		UserName: u.UserName,
		FullName: u.FullName,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
	}
}

func toUserInfos(users []model.User) []dto.UserInfo {
	items := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		items = append(items, toUserInfo(&users[i]))
	}
	return items
}
