package composer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"vidtube/internal/composer"
	apperrors "vidtube/internal/errors"
	"vidtube/internal/model"
	"vidtube/internal/pagination"
	"vidtube/internal/testutil"
	"vidtube/pkg/logger"
)

type videoRow struct {
	model.Video
	composer.Annotation
}

type commentRow struct {
	model.Comment
	composer.Annotation
}

func ptr(v int64) *int64 { return &v }

func ids(rows []videoRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestListSecondPageOfFifteen(t *testing.T) {
	db := testutil.NewDB(t)
	u1 := testutil.SeedUser(t, db, "u1")

	var created []*model.Video
	for i := 0; i < 15; i++ {
		created = append(created, testutil.SeedVideo(t, db, u1.ID, "v", testutil.At(i)))
	}

	res, err := composer.List[videoRow](context.Background(), db, composer.Videos,
		[]composer.Filter{composer.Where("e.owner_id = ?", u1.ID)}, nil, pagination.Of(2, 10))
	require.NoError(t, err)

	assert.Equal(t, int64(15), res.Total)
	assert.Equal(t, int64(2), res.Meta().TotalPages)
	require.Len(t, res.Items, 5)
	// 第二页是最早的 5 个视频，仍按 created_at 倒序
	assert.Equal(t, []int64{created[4].ID, created[3].ID, created[2].ID, created[1].ID, created[0].ID}, ids(res.Items))
}

func TestListPagesCoverAllItemsOnce(t *testing.T) {
	db := testutil.NewDB(t)
	u1 := testutil.SeedUser(t, db, "u1")
	for i := 0; i < 23; i++ {
		// 每 3 个视频共享同一时间戳，验证 id 倒序的稳定排序
		testutil.SeedVideo(t, db, u1.ID, "v", testutil.At(i/3))
	}

	all, err := composer.List[videoRow](context.Background(), db, composer.Videos, nil, nil, pagination.Of(1, 100))
	require.NoError(t, err)
	require.Len(t, all.Items, 23)

	for i := 1; i < len(all.Items); i++ {
		prev, cur := all.Items[i-1], all.Items[i]
		if prev.CreatedAt.Equal(cur.CreatedAt) {
			assert.Greater(t, prev.ID, cur.ID)
		} else {
			assert.True(t, prev.CreatedAt.After(cur.CreatedAt))
		}
	}

	var (
		concatenated []int64
		seen         = map[int64]bool{}
		sum          int
	)
	first, err := composer.List[videoRow](context.Background(), db, composer.Videos, nil, nil, pagination.Of(1, 7))
	require.NoError(t, err)
	totalPages := int(first.Meta().TotalPages)
	require.Equal(t, 4, totalPages)

	for p := 1; p <= totalPages; p++ {
		res, err := composer.List[videoRow](context.Background(), db, composer.Videos, nil, nil, pagination.Of(p, 7))
		require.NoError(t, err)
		sum += len(res.Items)
		for _, r := range res.Items {
			assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
			seen[r.ID] = true
			concatenated = append(concatenated, r.ID)
		}
	}

	assert.Equal(t, int(all.Total), sum)
	assert.Equal(t, ids(all.Items), concatenated)
}

func TestListLikeAnnotationsPerViewer(t *testing.T) {
	db := testutil.NewDB(t)
	u1 := testutil.SeedUser(t, db, "u1")
	u2 := testutil.SeedUser(t, db, "u2")
	v1 := testutil.SeedVideo(t, db, u1.ID, "v1", testutil.At(0))
	c := testutil.SeedComment(t, db, v1.ID, u2.ID, "first!", testutil.At(1))

	filters := []composer.Filter{composer.Where("e.video_id = ?", v1.ID)}
	list := func(viewer *int64) commentRow {
		res, err := composer.List[commentRow](context.Background(), db, composer.Comments, filters, viewer, pagination.Of(1, 10))
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		return res.Items[0]
	}

	for _, viewer := range []*int64{nil, ptr(u1.ID), ptr(u2.ID)} {
		row := list(viewer)
		assert.Equal(t, int64(0), row.LikeCount)
		assert.False(t, row.ViewerHasLiked)
	}

	testutil.SeedLike(t, db, u2.ID, model.LikeTargetComment, c.ID)
	// 同 id 的视频点赞不能计入评论
	testutil.SeedLike(t, db, u1.ID, model.LikeTargetVideo, c.ID)

	row := list(ptr(u2.ID))
	assert.Equal(t, int64(1), row.LikeCount)
	assert.True(t, row.ViewerHasLiked)

	row = list(ptr(u1.ID))
	assert.Equal(t, int64(1), row.LikeCount)
	assert.False(t, row.ViewerHasLiked)

	row = list(nil)
	assert.Equal(t, int64(1), row.LikeCount)
	assert.False(t, row.ViewerHasLiked)

	owner := row.Owner()
	require.NotNil(t, owner)
	assert.Equal(t, u2.ID, owner.ID)
	assert.Equal(t, "u2", owner.UserName)
	assert.Equal(t, "u2 full", owner.FullName)
}

func TestListExcludesDefectiveRows(t *testing.T) {
	db := testutil.NewDB(t)
	u1 := testutil.SeedUser(t, db, "u1")
	good := testutil.SeedVideo(t, db, u1.ID, "good", testutil.At(0))
	orphan := testutil.SeedVideo(t, db, 9999, "orphan", testutil.At(1))

	core, logs := observer.New(zapcore.WarnLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	res, err := composer.List[videoRow](context.Background(), db, composer.Videos, nil, nil, pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []int64{good.ID}, ids(res.Items))
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, int64(1), res.Meta().TotalPages)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Defective join, owner profile missing", entry.Message)
	assert.Equal(t, int64(1), entry.ContextMap()["count"])

	_, err = composer.Get[videoRow](context.Background(), db, composer.Videos,
		[]composer.Filter{composer.Where("e.id = ?", orphan.ID)}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, orphan.ID, logs.All()[logs.Len()-1].ContextMap()["id"])
}

func TestListDefectiveRowsDoNotShortenPages(t *testing.T) {
	db := testutil.NewDB(t)
	u1 := testutil.SeedUser(t, db, "u1")
	good := testutil.SeedVideo(t, db, u1.ID, "good", testutil.At(0))
	// 孤儿记录最新，若占用分页位置第一页就会是空的
	testutil.SeedVideo(t, db, 9999, "orphan", testutil.At(1))

	first, err := composer.List[videoRow](context.Background(), db, composer.Videos, nil, nil, pagination.Of(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []int64{good.ID}, ids(first.Items))

	totalPages := int(first.Meta().TotalPages)
	sum := 0
	for p := 1; p <= totalPages; p++ {
		res, err := composer.List[videoRow](context.Background(), db, composer.Videos, nil, nil, pagination.Of(p, 1))
		require.NoError(t, err)
		sum += len(res.Items)
	}
	assert.Equal(t, int(first.Total), sum)
	assert.Equal(t, 1, totalPages)
}

func TestListEmpty(t *testing.T) {
	db := testutil.NewDB(t)

	res, err := composer.List[videoRow](context.Background(), db, composer.Videos, nil, ptr(1), pagination.Of(1, 10))
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.Total)
	assert.Equal(t, int64(0), res.Meta().TotalPages)
}

func TestListCancelledContextReturnsNothing(t *testing.T) {
	db := testutil.NewDB(t)
	u1 := testutil.SeedUser(t, db, "u1")
	testutil.SeedVideo(t, db, u1.ID, "v", testutil.At(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := composer.List[videoRow](ctx, db, composer.Videos, nil, nil, pagination.Of(1, 10))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDependency))
	assert.Nil(t, res.Items)
	assert.Equal(t, int64(0), res.Total)
}

func TestGetVideoDetailSubscriberJoin(t *testing.T) {
	db := testutil.NewDB(t)
	u1 := testutil.SeedUser(t, db, "u1")
	u2 := testutil.SeedUser(t, db, "u2")
	u3 := testutil.SeedUser(t, db, "u3")
	v := testutil.SeedVideo(t, db, u1.ID, "v", testutil.At(0))

	testutil.SeedSubscription(t, db, u2.ID, u1.ID)
	testutil.SeedSubscription(t, db, u3.ID, u1.ID)
	// u1 订阅 u2 不影响 u1 的订阅者数量
	testutil.SeedSubscription(t, db, u1.ID, u2.ID)
	testutil.SeedLike(t, db, u3.ID, model.LikeTargetVideo, v.ID)

	filters := []composer.Filter{composer.Where("e.id = ?", v.ID)}

	row, err := composer.Get[videoRow](context.Background(), db, composer.VideoDetail, filters, ptr(u2.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), row.SubscribersCount)
	assert.True(t, row.ViewerIsSubscribed)
	assert.Equal(t, int64(1), row.LikeCount)
	assert.False(t, row.ViewerHasLiked)

	row, err = composer.Get[videoRow](context.Background(), db, composer.VideoDetail, filters, ptr(u1.ID))
	require.NoError(t, err)
	assert.False(t, row.ViewerIsSubscribed)

	row, err = composer.Get[videoRow](context.Background(), db, composer.VideoDetail, filters, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row.SubscribersCount)
	assert.False(t, row.ViewerIsSubscribed)

	// 列表不做二级连接
	plain, err := composer.Get[videoRow](context.Background(), db, composer.Videos, filters, ptr(u2.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), plain.SubscribersCount)
}

func TestGetMissing(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := composer.Get[commentRow](context.Background(), db, composer.Comments,
		[]composer.Filter{composer.Where("e.id = ?", 42)}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "comment not found", err.Error())
}
