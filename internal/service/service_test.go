package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vidtube/internal/config"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/testutil"
)

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
	failPut map[string]bool // 按对象前缀注入失败
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, failPut: map[string]bool{}}
}

func (b *fakeBlobs) Put(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for prefix := range b.failPut {
		if strings.HasPrefix(objectName, prefix) {
			return "", errors.New("blob store unavailable")
		}
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	b.objects[objectName] = data
	return "http://blob/" + objectName, nil
}

func (b *fakeBlobs) Remove(_ context.Context, objectName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, objectName)
	b.removed = append(b.removed, objectName)
	return nil
}

func (b *fakeBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

type fakeEvents struct {
	mu     sync.Mutex
	events []*infraKafka.DomainEvent
	err    error
}

func (p *fakeEvents) Publish(_ context.Context, evt *infraKafka.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *fakeEvents) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func (d *fakeDeduper) FirstView(_ context.Context, videoID int64, viewer string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	key := fmt.Sprintf("%d:%s", videoID, viewer)
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

type env struct {
	db     *gorm.DB
	blobs  *fakeBlobs
	events *fakeEvents
	views  *fakeDeduper

	videoRepo    *repository.VideoRepository
	commentRepo  *repository.CommentRepository
	tweetRepo    *repository.TweetRepository
	playlistRepo *repository.PlaylistRepository
	likeRepo     *repository.LikeRepository
	subRepo      *repository.SubscriptionRepository
	userRepo     *repository.UserRepository

	videos        *VideoService
	comments      *CommentService
	tweets        *TweetService
	playlists     *PlaylistService
	likes         *LikeService
	subscriptions *SubscriptionService
	users         *UserService
}

var testMedia = config.MediaConfig{
	MaxVideoMB:       1,
	MaxThumbnailMB:   1,
	VideoFormats:     []string{"mp4", "webm"},
	ThumbnailFormats: []string{"jpg", "png"},
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	e := &env{
		db:           db,
		blobs:        newFakeBlobs(),
		events:       &fakeEvents{},
		views:        &fakeDeduper{seen: map[string]bool{}},
		videoRepo:    repository.NewVideoRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		tweetRepo:    repository.NewTweetRepository(db),
		playlistRepo: repository.NewPlaylistRepository(db),
		likeRepo:     repository.NewLikeRepository(db),
		subRepo:      repository.NewSubscriptionRepository(db),
		userRepo:     repository.NewUserRepository(db),
	}
	e.videos = NewVideoService(e.videoRepo, e.userRepo, e.blobs, e.events, e.views, testMedia)
	e.comments = NewCommentService(e.commentRepo, e.videoRepo, e.events)
	e.tweets = NewTweetService(e.tweetRepo, e.userRepo)
	e.playlists = NewPlaylistService(e.playlistRepo, e.videoRepo, e.userRepo)
	e.likes = NewLikeService(e.likeRepo, e.videoRepo, e.commentRepo, e.tweetRepo, e.events)
	e.subscriptions = NewSubscriptionService(e.subRepo, e.userRepo, e.events)
	e.users = NewUserService(e.userRepo, e.subRepo)
	return e
}

func (e *env) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

func (e *env) unpublish(t *testing.T, v *model.Video) {
	t.Helper()
	require.NoError(t, e.db.Model(v).Update("is_published", false).Error)
}

func media(name string, size int) *MediaFile {
	return &MediaFile{
		Reader:      bytes.NewReader(make([]byte, size)),
		Size:        int64(size),
		Filename:    name,
		ContentType: "application/octet-stream",
	}
}

func ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }
