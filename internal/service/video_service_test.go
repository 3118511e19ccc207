package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/api/dto"
	apperrors "vidtube/internal/errors"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/pagination"
	"vidtube/internal/testutil"
)

func publishReq() *dto.VideoPublishRequest {
	return &dto.VideoPublishRequest{Title: "cats", Description: "cats playing", Duration: 42.5}
}

func TestVideoPublish(t *testing.T) {
	e := newEnv(t)
	u1 := testutil.SeedUser(t, e.db, "u1")

	view, err := e.videos.Publish(context.Background(), ptr(u1.ID), publishReq(), media("clip.MP4", 1024), media("cover.jpg", 64))
	require.NoError(t, err)

	assert.Equal(t, "cats", view.Title)
	assert.Equal(t, 42.5, view.Duration)
	assert.True(t, view.IsPublished)
	assert.Contains(t, view.VideoURL, "http://blob/videos/")
	assert.Contains(t, view.ThumbnailURL, "http://blob/thumbnails/")
	require.NotNil(t, view.Owner)
	assert.Equal(t, u1.ID, view.Owner.ID)
	assert.Equal(t, 2, e.blobs.count())

	stored, err := e.videoRepo.GetByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.VideoObject)
	assert.NotEmpty(t, stored.ThumbnailObject)
	assert.Equal(t, []string{infraKafka.EventVideoPublished}, e.events.types())
}

func TestVideoPublishValidation(t *testing.T) {
	e := newEnv(t)
	u1 := testutil.SeedUser(t, e.db, "u1")
	ctx := context.Background()

	_, err := e.videos.Publish(ctx, ptr(u1.ID), &dto.VideoPublishRequest{Title: " ", Description: "d"}, media("a.mp4", 1), media("a.jpg", 1))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = e.videos.Publish(ctx, ptr(u1.ID), publishReq(), nil, media("a.jpg", 1))
	assert.Equal(t, ErrVideoFileRequired, err)

	_, err = e.videos.Publish(ctx, ptr(u1.ID), publishReq(), media("a.mp4", 1), nil)
	assert.Equal(t, ErrThumbnailRequired, err)

	_, err = e.videos.Publish(ctx, ptr(u1.ID), publishReq(), media("a.exe", 1), media("a.jpg", 1))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = e.videos.Publish(ctx, ptr(u1.ID), publishReq(), media("a.mp4", 2<<20), media("a.jpg", 1))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = e.videos.Publish(ctx, nil, publishReq(), media("a.mp4", 1), media("a.jpg", 1))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	assert.Equal(t, 0, e.blobs.count())
	assert.Equal(t, int64(0), e.count(t, &model.Video{}))
}

func TestVideoPublishCleansUpBlobsOnFailure(t *testing.T) {
	t.Run("thumbnail upload fails", func(t *testing.T) {
		e := newEnv(t)
		u1 := testutil.SeedUser(t, e.db, "u1")
		e.blobs.failPut["thumbnails/"] = true

		_, err := e.videos.Publish(context.Background(), ptr(u1.ID), publishReq(), media("a.mp4", 8), media("a.jpg", 8))
		assert.True(t, apperrors.Is(err, apperrors.ErrDependency))
		assert.Equal(t, 0, e.blobs.count())
		assert.Len(t, e.blobs.removed, 1)
		assert.Equal(t, int64(0), e.count(t, &model.Video{}))
	})

	t.Run("insert fails", func(t *testing.T) {
		e := newEnv(t)
		u1 := testutil.SeedUser(t, e.db, "u1")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := e.videos.Publish(ctx, ptr(u1.ID), publishReq(), media("a.mp4", 8), media("a.jpg", 8))
		assert.True(t, apperrors.Is(err, apperrors.ErrDependency))
		assert.Equal(t, 0, e.blobs.count())
		assert.Len(t, e.blobs.removed, 2)
		assert.Equal(t, int64(0), e.count(t, &model.Video{}))
		assert.Empty(t, e.events.types())
	})
}

func TestVideoUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")

	view, err := e.videos.Publish(ctx, ptr(u1.ID), publishReq(), media("a.mp4", 8), media("a.jpg", 8))
	require.NoError(t, err)
	before, err := e.videoRepo.GetByID(ctx, view.ID)
	require.NoError(t, err)

	_, err = e.videos.Update(ctx, ptr(u1.ID), view.ID, &dto.VideoUpdateRequest{}, nil)
	assert.Equal(t, ErrNoFieldsToUpdate, err)

	_, err = e.videos.Update(ctx, ptr(u2.ID), view.ID, &dto.VideoUpdateRequest{Title: strPtr("mine now")}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = e.videos.Update(ctx, ptr(u1.ID), 999, &dto.VideoUpdateRequest{Title: strPtr("x")}, nil)
	assert.Equal(t, ErrVideoNotFound, err)

	updated, err := e.videos.Update(ctx, ptr(u1.ID), view.ID, &dto.VideoUpdateRequest{Title: strPtr("dogs")}, media("b.png", 8))
	require.NoError(t, err)
	assert.Equal(t, "dogs", updated.Title)
	assert.Equal(t, "cats playing", updated.Description)
	assert.NotEqual(t, view.ThumbnailURL, updated.ThumbnailURL)

	// 旧封面被清理，视频文件保留
	assert.Equal(t, []string{before.ThumbnailObject}, e.blobs.removed)
	assert.Equal(t, 2, e.blobs.count())
}

func TestVideoTogglePublish(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	v := testutil.SeedVideo(t, e.db, u1.ID, "v", testutil.At(0))

	_, err := e.videos.TogglePublish(ctx, ptr(u2.ID), v.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	res, err := e.videos.TogglePublish(ctx, ptr(u1.ID), v.ID)
	require.NoError(t, err)
	assert.False(t, res.IsPublished)

	res, err = e.videos.TogglePublish(ctx, ptr(u1.ID), v.ID)
	require.NoError(t, err)
	assert.True(t, res.IsPublished)
}

func TestVideoDeleteCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")

	view, err := e.videos.Publish(ctx, ptr(u1.ID), publishReq(), media("a.mp4", 8), media("a.jpg", 8))
	require.NoError(t, err)
	c := testutil.SeedComment(t, e.db, view.ID, u2.ID, "nice", testutil.At(1))
	testutil.SeedLike(t, e.db, u2.ID, model.LikeTargetVideo, view.ID)
	testutil.SeedLike(t, e.db, u1.ID, model.LikeTargetComment, c.ID)

	err = e.videos.Delete(ctx, ptr(u2.ID), view.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	assert.Equal(t, int64(1), e.count(t, &model.Video{}))

	require.NoError(t, e.videos.Delete(ctx, ptr(u1.ID), view.ID))
	assert.Equal(t, int64(0), e.count(t, &model.Video{}))
	assert.Equal(t, int64(0), e.count(t, &model.Comment{}))
	assert.Equal(t, int64(0), e.count(t, &model.Like{}))
	assert.Equal(t, 0, e.blobs.count())
	assert.Equal(t, []string{infraKafka.EventVideoPublished, infraKafka.EventVideoDeleted}, e.events.types())

	err = e.videos.Delete(ctx, ptr(u1.ID), view.ID)
	assert.Equal(t, ErrVideoNotFound, err)
}

func TestVideoListVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	public := testutil.SeedVideo(t, e.db, u1.ID, "Funny Cats", testutil.At(0))
	draft := testutil.SeedVideo(t, e.db, u1.ID, "draft", testutil.At(1))
	other := testutil.SeedVideo(t, e.db, u2.ID, "dogs", testutil.At(2))
	e.unpublish(t, draft)

	all, err := e.videos.List(ctx, nil, nil, "", pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID, public.ID}, videoIDs(all.Videos))

	own, err := e.videos.List(ctx, ptr(u1.ID), ptr(u1.ID), "", pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []int64{draft.ID, public.ID}, videoIDs(own.Videos))

	visitor, err := e.videos.List(ctx, ptr(u2.ID), ptr(u1.ID), "", pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []int64{public.ID}, videoIDs(visitor.Videos))

	queried, err := e.videos.List(ctx, nil, nil, "cats", pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []int64{public.ID}, videoIDs(queried.Videos))

	_, err = e.videos.List(ctx, nil, ptr(999), "", pagination.Of(1, 10))
	assert.Equal(t, ErrUserNotFound, err)
}

func TestVideoDetail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	v := testutil.SeedVideo(t, e.db, u1.ID, "v", testutil.At(0))
	testutil.SeedSubscription(t, e.db, u2.ID, u1.ID)

	detail, err := e.videos.Detail(ctx, ptr(u2.ID), "ip:1.1.1.1", v.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "u1", detail.Owner.UserName)
	assert.Equal(t, int64(1), detail.Owner.SubscribersCount)
	assert.True(t, detail.Owner.IsSubscribed)
	assert.Equal(t, int64(1), detail.ViewCount)

	// 同一观看者窗口期内不重复计数
	detail, err = e.videos.Detail(ctx, ptr(u2.ID), "ip:2.2.2.2", v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ViewCount)

	detail, err = e.videos.Detail(ctx, nil, "ip:3.3.3.3", v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ViewCount)
	assert.False(t, detail.Owner.IsSubscribed)

	e.views.err = assert.AnError
	detail, err = e.videos.Detail(ctx, nil, "ip:4.4.4.4", v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ViewCount)
}

func TestVideoDetailHidesUnpublished(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	v := testutil.SeedVideo(t, e.db, u1.ID, "v", testutil.At(0))
	e.unpublish(t, v)

	_, err := e.videos.Detail(ctx, ptr(u2.ID), "", v.ID)
	assert.Equal(t, ErrVideoNotFound, err)
	_, err = e.videos.Detail(ctx, nil, "ip:1.1.1.1", v.ID)
	assert.Equal(t, ErrVideoNotFound, err)

	detail, err := e.videos.Detail(ctx, ptr(u1.ID), "", v.ID)
	require.NoError(t, err)
	assert.False(t, detail.IsPublished)

	_, err = e.videos.Detail(ctx, nil, "", 12345)
	assert.Equal(t, ErrVideoNotFound, err)
}

func videoIDs(items []dto.VideoView) []int64 {
	out := make([]int64, 0, len(items))
	for _, v := range items {
		out = append(out, v.ID)
	}
	return out
}
