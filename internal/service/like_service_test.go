package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vidtube/internal/errors"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/pagination"
	"vidtube/internal/testutil"
)

func TestLikeToggleTwiceLeavesNoEdge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	v1 := testutil.SeedVideo(t, e.db, u1.ID, "v1", testutil.At(0))

	first, err := e.likes.ToggleVideo(ctx, ptr(u2.ID), v1.ID)
	require.NoError(t, err)
	assert.True(t, first.State)
	assert.Equal(t, int64(1), e.count(t, &model.Like{}))

	second, err := e.likes.ToggleVideo(ctx, ptr(u2.ID), v1.ID)
	require.NoError(t, err)
	assert.False(t, second.State)
	assert.Equal(t, int64(0), e.count(t, &model.Like{}))

	assert.Equal(t, []string{infraKafka.EventLikeToggled, infraKafka.EventLikeToggled}, e.events.types())
}

func TestLikeSelfAllowed(t *testing.T) {
	e := newEnv(t)
	u1 := testutil.SeedUser(t, e.db, "u1")
	tw := testutil.SeedTweet(t, e.db, u1.ID, "mine", testutil.At(0))

	res, err := e.likes.ToggleTweet(context.Background(), ptr(u1.ID), tw.ID)
	require.NoError(t, err)
	assert.True(t, res.State)
}

func TestLikeMissingTargets(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")

	_, err := e.likes.ToggleVideo(ctx, ptr(u1.ID), 7)
	assert.Equal(t, ErrVideoNotFound, err)
	_, err = e.likes.ToggleComment(ctx, ptr(u1.ID), 7)
	assert.Equal(t, ErrCommentNotFound, err)
	_, err = e.likes.ToggleTweet(ctx, ptr(u1.ID), 7)
	assert.Equal(t, ErrTweetNotFound, err)
	assert.Equal(t, int64(0), e.count(t, &model.Like{}))
}

func TestLikeRequiresCaller(t *testing.T) {
	e := newEnv(t)
	u1 := testutil.SeedUser(t, e.db, "u1")
	v1 := testutil.SeedVideo(t, e.db, u1.ID, "v1", testutil.At(0))

	_, err := e.likes.ToggleVideo(context.Background(), nil, v1.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = e.likes.LikedVideos(context.Background(), nil, pagination.Of(1, 10))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestLikedVideos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	v1 := testutil.SeedVideo(t, e.db, u1.ID, "v1", testutil.At(0))
	v2 := testutil.SeedVideo(t, e.db, u1.ID, "v2", testutil.At(1))
	hidden := testutil.SeedVideo(t, e.db, u1.ID, "hidden", testutil.At(2))
	testutil.SeedVideo(t, e.db, u1.ID, "not liked", testutil.At(3))

	for _, v := range []*model.Video{v1, v2, hidden} {
		testutil.SeedLike(t, e.db, u2.ID, model.LikeTargetVideo, v.ID)
	}
	// 同 id 的评论点赞不算视频点赞
	testutil.SeedLike(t, e.db, u1.ID, model.LikeTargetComment, v1.ID)
	e.unpublish(t, hidden)

	res, err := e.likes.LikedVideos(ctx, ptr(u2.ID), pagination.Of(1, 10))
	require.NoError(t, err)
	require.Len(t, res.Videos, 2)
	assert.Equal(t, v2.ID, res.Videos[0].ID)
	assert.Equal(t, v1.ID, res.Videos[1].ID)
	for _, v := range res.Videos {
		assert.True(t, v.ViewerHasLiked)
		assert.Equal(t, int64(1), v.LikeCount)
	}

	none, err := e.likes.LikedVideos(ctx, ptr(u1.ID), pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Empty(t, none.Videos)
	assert.Equal(t, int64(0), none.Pagination.TotalItems)
}
