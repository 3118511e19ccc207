// Package composer 组装列表/详情的读模型：基础记录 + 作者公开资料 + 点赞聚合 + 观看者相关标记。
//
// 视频、评论、动态、点赞过的视频共用同一套查询，由 Spec 描述目标表和连接方式，
// Filter 描述作用域。过滤条件中的列统一使用别名 e 引用基础表，例如 Where("e.video_id = ?", id)。
package composer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "vidtube/internal/errors"
	"vidtube/internal/model"
	"vidtube/internal/pagination"
	"vidtube/pkg/logger"
)

// Spec 描述一次组装：基础表、点赞目标类型、是否附带作者订阅信息
type Spec struct {
	Table            string
	LikeTarget       model.LikeTarget
	OwnerSubscribers bool
}

var (
	Videos   = Spec{Table: "videos", LikeTarget: model.LikeTargetVideo}
	Comments = Spec{Table: "comments", LikeTarget: model.LikeTargetComment}
	Tweets   = Spec{Table: "tweets", LikeTarget: model.LikeTargetTweet}

	// VideoDetail 视频详情额外连接作者的订阅边
	VideoDetail = Spec{Table: "videos", LikeTarget: model.LikeTargetVideo, OwnerSubscribers: true}
)

// Filter 作用域条件
type Filter struct {
	expr string
	args []any
}

// Where 构造过滤条件，基础表别名为 e
func Where(expr string, args ...any) Filter {
	return Filter{expr: expr, args: args}
}

// Annotation 组装出的附加字段，嵌入到各实体的行结构中
type Annotation struct {
	EntityID           int64   `gorm:"column:entity_id" json:"-"`
	ProfileID          *int64  `gorm:"column:profile_id" json:"-"`
	ProfileUsername    *string `gorm:"column:profile_username" json:"-"`
	ProfileFullName    *string `gorm:"column:profile_full_name" json:"-"`
	ProfileAvatar      *string `gorm:"column:profile_avatar" json:"-"`
	LikeCount          int64   `gorm:"column:like_count" json:"-"`
	ViewerHasLiked     bool    `gorm:"column:viewer_has_liked" json:"-"`
	SubscribersCount   int64   `gorm:"column:owner_subscribers_count" json:"-"`
	ViewerIsSubscribed bool    `gorm:"column:viewer_is_subscribed" json:"-"`
}

func (a *Annotation) Annotations() *Annotation {
	return a
}

// Profile 作者公开资料，不含邮箱、密码等内部字段
type Profile struct {
	ID       int64
	UserName string
	FullName string
	Avatar   *string
}

// Owner 返回连接到的作者资料，未连接到时返回 nil
func (a *Annotation) Owner() *Profile {
	if a.ProfileID == nil {
		return nil
	}
	p := &Profile{ID: *a.ProfileID, Avatar: a.ProfileAvatar}
	if a.ProfileUsername != nil {
		p.UserName = *a.ProfileUsername
	}
	if a.ProfileFullName != nil {
		p.FullName = *a.ProfileFullName
	}
	return p
}

// Row 行结构约束：*T 需要暴露嵌入的 Annotation
type Row[T any] interface {
	*T
	Annotations() *Annotation
}

// Result 一页组装结果
type Result[T any] struct {
	Items []T
	Total int64
	Page  pagination.Page
}

// Meta 分页信息
func (r Result[T]) Meta() pagination.Meta {
	return pagination.NewMeta(r.Page, r.Total)
}

// List 按 created_at DESC, id DESC 返回一页组装结果
// 计数与分页查询并发执行，任一失败或 ctx 取消时不返回部分结果
// 作者资料缺失的记录既不计入 Total 也不占用分页位置
func List[T any, PT Row[T]](ctx context.Context, db *gorm.DB, spec Spec, filters []Filter, viewerID *int64, page pagination.Page) (Result[T], error) {
	var (
		rows   []T
		counts struct {
			Matched  int64
			Attached int64
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := Apply(db.WithContext(gctx).Table(spec.Table+" AS e").
			Select("COUNT(*) AS matched, COUNT(u.id) AS attached").
			Joins("LEFT JOIN users u ON u.id = e.owner_id"), filters)
		if err := q.Scan(&counts).Error; err != nil {
			return apperrors.Dependency("count "+spec.Table, err)
		}
		return nil
	})
	g.Go(func() error {
		q := selectQuery(db.WithContext(gctx), spec, filters, viewerID).
			Where("u.id IS NOT NULL").
			Order("e.created_at DESC").
			Order("e.id DESC").
			Offset(page.Offset()).
			Limit(page.Limit)
		if err := q.Find(&rows).Error; err != nil {
			return apperrors.Dependency("compose "+spec.Table, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Compose listing failed", zap.String("table", spec.Table), zap.Error(err))
		return Result[T]{}, err
	}

	if missing := counts.Matched - counts.Attached; missing > 0 {
		logger.Warn("Defective join, owner profile missing",
			zap.String("table", spec.Table),
			zap.Int64("count", missing),
		)
	}

	return Result[T]{Items: dropDefective[T, PT](spec, rows), Total: counts.Attached, Page: page}, nil
}

// Get 返回单条组装结果；不存在或作者资料缺失时返回 NOT_FOUND
func Get[T any, PT Row[T]](ctx context.Context, db *gorm.DB, spec Spec, filters []Filter, viewerID *int64) (*T, error) {
	var rows []T
	q := selectQuery(db.WithContext(ctx), spec, filters, viewerID).Limit(1)
	if err := q.Find(&rows).Error; err != nil {
		logger.Error("Compose item failed", zap.String("table", spec.Table), zap.Error(err))
		return nil, apperrors.Dependency("compose "+spec.Table, err)
	}

	rows = dropDefective[T, PT](spec, rows)
	if len(rows) == 0 {
		return nil, apperrors.NotFoundf("%s not found", singular(spec.Table))
	}
	return &rows[0], nil
}

func selectQuery(tx *gorm.DB, spec Spec, filters []Filter, viewerID *int64) *gorm.DB {
	var (
		cols []string
		args []any
	)

	cols = append(cols,
		"e.*",
		"e.id AS entity_id",
		"u.id AS profile_id",
		"u.user_name AS profile_username",
		"u.full_name AS profile_full_name",
		"u.avatar AS profile_avatar",
	)

	if spec.LikeTarget != "" {
		cols = append(cols, "COALESCE(lc.cnt, 0) AS like_count")
		if viewerID != nil {
			cols = append(cols, "EXISTS (SELECT 1 FROM likes vl WHERE vl.target_type = ? AND vl.target_id = e.id AND vl.liker_id = ?) AS viewer_has_liked")
			args = append(args, spec.LikeTarget, *viewerID)
		} else {
			cols = append(cols, "FALSE AS viewer_has_liked")
		}
	}

	if spec.OwnerSubscribers {
		cols = append(cols, "(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = e.owner_id) AS owner_subscribers_count")
		if viewerID != nil {
			cols = append(cols, "EXISTS (SELECT 1 FROM subscriptions vs WHERE vs.channel_id = e.owner_id AND vs.subscriber_id = ?) AS viewer_is_subscribed")
			args = append(args, *viewerID)
		} else {
			cols = append(cols, "FALSE AS viewer_is_subscribed")
		}
	}

	q := tx.Table(spec.Table+" AS e").
		Select(strings.Join(cols, ", "), args...).
		Joins("LEFT JOIN users u ON u.id = e.owner_id")

	if spec.LikeTarget != "" {
		q = q.Joins("LEFT JOIN (SELECT target_id, COUNT(*) AS cnt FROM likes WHERE target_type = ? GROUP BY target_id) lc ON lc.target_id = e.id", spec.LikeTarget)
	}

	return Apply(q, filters)
}

// Apply 把过滤条件追加到查询上，查询需以 e 为基础表别名
func Apply(q *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		q = q.Where(f.expr, f.args...)
	}
	return q
}

// dropDefective 排除作者资料未连接上的记录（作者被删除而未级联）
func dropDefective[T any, PT Row[T]](spec Spec, rows []T) []T {
	kept := rows[:0]
	for i := range rows {
		a := PT(&rows[i]).Annotations()
		if a.ProfileID == nil {
			logger.Warn("Defective join, owner profile missing",
				zap.String("table", spec.Table),
				zap.Int64("id", a.EntityID),
			)
			continue
		}
		kept = append(kept, rows[i])
	}
	if kept == nil {
		return []T{}
	}
	return kept
}

func singular(table string) string {
	switch table {
	case "videos":
		return "video"
	case "comments":
		return "comment"
	case "tweets":
		return "tweet"
	default:
		return fmt.Sprintf("%s record", table)
	}
}
