package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/testutil"
)

type fakeSyncer struct {
	synced  map[int64]string
	deleted []int64
	batches [][]int64
}

func newFakeSyncer() *fakeSyncer {
	return &fakeSyncer{synced: map[int64]string{}}
}

func (f *fakeSyncer) SyncVideo(_ context.Context, v *model.Video, ownerName string) error {
	f.synced[v.ID] = ownerName
	return nil
}

func (f *fakeSyncer) DeleteVideo(_ context.Context, videoID int64) error {
	f.deleted = append(f.deleted, videoID)
	return nil
}

func (f *fakeSyncer) BulkSyncVideos(_ context.Context, videos []model.Video, names map[int64]string) (int, int, error) {
	ids := make([]int64, 0, len(videos))
	for i := range videos {
		ids = append(ids, videos[i].ID)
		f.synced[videos[i].ID] = names[videos[i].OwnerID]
	}
	f.batches = append(f.batches, ids)
	return len(videos), 0, nil
}

func event(t *testing.T, typ string, id int64) *infraKafka.DomainEvent {
	t.Helper()
	evt, err := infraKafka.NewEvent(typ, id, 1, nil)
	require.NoError(t, err)
	return evt
}

func TestIndexHandleEvent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u1 := testutil.SeedUser(t, e.db, "u1")
	v := testutil.SeedVideo(t, e.db, u1.ID, "v", testutil.At(0))

	syncer := newFakeSyncer()
	svc := NewIndexService(e.videoRepo, e.userRepo, syncer)

	require.NoError(t, svc.HandleEvent(ctx, event(t, infraKafka.EventVideoPublished, v.ID)))
	assert.Equal(t, "u1", syncer.synced[v.ID])

	require.NoError(t, svc.HandleEvent(ctx, event(t, infraKafka.EventCommentCreated, 5)))
	assert.Len(t, syncer.synced, 1)

	// 事件到达时视频已被删除
	require.NoError(t, svc.HandleEvent(ctx, event(t, infraKafka.EventVideoUpdated, 999)))
	require.NoError(t, svc.HandleEvent(ctx, event(t, infraKafka.EventVideoDeleted, v.ID)))
	assert.Equal(t, []int64{999, v.ID}, syncer.deleted)
}

func TestIndexReindexInBatches(t *testing.T) {
	e := newEnv(t)
	u1 := testutil.SeedUser(t, e.db, "u1")
	u2 := testutil.SeedUser(t, e.db, "u2")
	var ids []int64
	for i := 0; i < 5; i++ {
		owner := u1.ID
		if i%2 == 1 {
			owner = u2.ID
		}
		ids = append(ids, testutil.SeedVideo(t, e.db, owner, "v", testutil.At(i)).ID)
	}

	syncer := newFakeSyncer()
	svc := NewIndexService(e.videoRepo, e.userRepo, syncer)

	synced, failed, err := svc.Reindex(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 5, synced)
	assert.Equal(t, 0, failed)
	assert.Equal(t, [][]int64{ids[0:2], ids[2:4], ids[4:5]}, syncer.batches)
	assert.Equal(t, "u2", syncer.synced[ids[1]])
	assert.Equal(t, "u1", syncer.synced[ids[4]])
}
