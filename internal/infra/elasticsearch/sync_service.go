package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vidtube/internal/model"
	"vidtube/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// VideoIndex 视频搜索索引
type VideoIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewVideoIndex es 为 nil 时使用全局客户端
func NewVideoIndex(es *elasticsearch.Client, index string) *VideoIndex {
	if es == nil {
		es = client
	}
	return &VideoIndex{client: es, index: index}
}

// VideoDoc ES 视频文档结构
type VideoDoc struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	OwnerName   string  `json:"owner_name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsPublished bool    `json:"is_published"`
	ViewCount   int64   `json:"view_count"`
	Duration    float64 `json:"duration"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func videoToDoc(v *model.Video, ownerName string) *VideoDoc {
	return &VideoDoc{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		OwnerName:   ownerName,
		Title:       v.Title,
		Description: v.Description,
		IsPublished: v.IsPublished,
		ViewCount:   v.ViewCount,
		Duration:    v.Duration,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// SyncVideo 同步单个视频到 ES
func (x *VideoIndex) SyncVideo(ctx context.Context, v *model.Video, ownerName string) error {
	body, err := json.Marshal(videoToDoc(v, ownerName))
	if err != nil {
		return err
	}

	resp, err := x.client.Index(
		x.index,
		bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(strconv.FormatInt(v.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", v.ID))
	return nil
}

// DeleteVideo 从 ES 删除视频，文档不存在不视为错误
func (x *VideoIndex) DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := x.client.Delete(
		x.index,
		strconv.FormatInt(videoID, 10),
		x.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSyncVideos 批量同步视频到 ES
func (x *VideoIndex) BulkSyncVideos(ctx context.Context, videos []model.Video, ownerNames map[int64]string) (success, failed int, err error) {
	var buf strings.Builder
	for i := range videos {
		v := &videos[i]
		docBody, _ := json.Marshal(videoToDoc(v, ownerNames[v.OwnerID]))

		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, x.index, v.ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := x.client.Bulk(strings.NewReader(buf.String()), x.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(videos), 0, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// searchBody 构造搜索请求：标题/描述全文匹配，只搜公开视频，可按作者过滤
func searchBody(query string, ownerID *int64, from, size int) ([]byte, error) {
	filter := []map[string]any{
		{"term": map[string]any{"is_published": true}},
	}
	if ownerID != nil {
		filter = append(filter, map[string]any{"term": map[string]any{"owner_id": *ownerID}})
	}

	body := map[string]any{
		"from":    from,
		"size":    size,
		"_source": false,
		"query": map[string]any{
			"bool": map[string]any{
				"must": []map[string]any{{
					"multi_match": map[string]any{
						"query":  query,
						"fields": []string{"title^3", "description"},
					},
				}},
				"filter": filter,
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
	}
	return json.Marshal(body)
}

// SearchVideoIDs 返回命中的视频 ID（按相关度）与命中总数
func (x *VideoIndex) SearchVideoIDs(ctx context.Context, query string, ownerID *int64, from, size int) ([]int64, int64, error) {
	body, err := searchBody(query, ownerID, from, size)
	if err != nil {
		return nil, 0, err
	}

	resp, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", resp.String())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			logger.Warn("Skip ES hit with non-numeric id", zap.String("id", h.ID))
			continue
		}
		ids = append(ids, id)
	}
	return ids, result.Hits.Total.Value, nil
}
