package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vidtube/internal/errors"
	"vidtube/internal/model"
	"vidtube/internal/pagination"
	"vidtube/internal/testutil"
)

func TestSubscriptionToggle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")

	on, err := e.subscriptions.Toggle(ctx, ptr(u2.ID), u1.ID)
	require.NoError(t, err)
	assert.True(t, on.State)

	off, err := e.subscriptions.Toggle(ctx, ptr(u2.ID), u1.ID)
	require.NoError(t, err)
	assert.False(t, off.State)
	assert.Equal(t, int64(0), e.count(t, &model.Subscription{}))
}

func TestSubscriptionRejectsSelfAndMissingChannel(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")

	_, err := e.subscriptions.Toggle(ctx, ptr(u1.ID), u1.ID)
	assert.Equal(t, ErrSelfSubscribe, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = e.subscriptions.Toggle(ctx, ptr(u1.ID), 99)
	assert.Equal(t, ErrUserNotFound, err)

	_, err = e.subscriptions.Toggle(ctx, nil, u1.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	assert.Equal(t, int64(0), e.count(t, &model.Subscription{}))
}

func TestSubscriptionListings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	u3 := testutil.SeedUser(t, e.db, "u3")
	testutil.SeedSubscription(t, e.db, u2.ID, u1.ID)
	testutil.SeedSubscription(t, e.db, u3.ID, u1.ID)
	testutil.SeedSubscription(t, e.db, u2.ID, u3.ID)

	subs, err := e.subscriptions.Subscribers(ctx, u1.ID, pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), subs.Pagination.TotalItems)
	names := []string{subs.Users[0].UserName, subs.Users[1].UserName}
	assert.ElementsMatch(t, []string{"u2", "u3"}, names)

	channels, err := e.subscriptions.SubscribedChannels(ctx, u2.ID, pagination.Of(1, 1))
	require.NoError(t, err)
	assert.Len(t, channels.Users, 1)
	assert.Equal(t, int64(2), channels.Pagination.TotalItems)
	assert.True(t, channels.Pagination.HasNextPage)

	_, err = e.subscriptions.Subscribers(ctx, 404, pagination.Of(1, 10))
	assert.Equal(t, ErrUserNotFound, err)
}
