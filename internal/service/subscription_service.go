package service

import (
	"context"

	"vidtube/internal/api/dto"
	apperrors "vidtube/internal/errors"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/pagination"
	"vidtube/internal/repository"
)

var ErrSelfSubscribe = apperrors.Validation("不能订阅自己的频道")

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
	events   EventPublisher
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository, events EventPublisher) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo, events: events}
}

// Toggle 切换对频道的订阅
func (s *SubscriptionService) Toggle(ctx context.Context, callerID *int64, channelID int64) (*dto.ToggleData, error) {
	subscriberID, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if subscriberID == channelID {
		return nil, ErrSelfSubscribe
	}
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, storeErr("get channel", err, ErrUserNotFound)
	}

	state, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, storeErr("toggle subscription", err, nil)
	}

	publish(ctx, s.events, infraKafka.EventSubscriptionToggled, channelID, subscriberID, infraKafka.TogglePayload{
		TargetType: "channel",
		State:      state,
	})

	return &dto.ToggleData{State: state}, nil
}

// Subscribers 频道的订阅者
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID int64, page pagination.Page) (*dto.UserListData, error) {
	return s.list(ctx, channelID, page, s.userRepo.ListSubscribers)
}

// SubscribedChannels 用户订阅的频道
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID int64, page pagination.Page) (*dto.UserListData, error) {
	return s.list(ctx, subscriberID, page, s.userRepo.ListSubscribedChannels)
}

func (s *SubscriptionService) list(
	ctx context.Context,
	userID int64,
	page pagination.Page,
	fetch func(context.Context, int64, pagination.Page) ([]model.User, int64, error),
) (*dto.UserListData, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, storeErr("get user", err, ErrUserNotFound)
	}

	users, total, err := fetch(ctx, userID, page)
	if err != nil {
		return nil, storeErr("list subscriptions", err, nil)
	}
	return &dto.UserListData{Users: toUserInfos(users), Pagination: pagination.NewMeta(page, total)}, nil
}
