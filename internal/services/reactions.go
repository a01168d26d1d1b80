package services

import (
	"errors"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"gorm.io/gorm"
)

// ReactionTarget 点赞目标，留言 XOR 评论 XOR 博客
// 只能通过构造函数创建，结构上保证互斥
type ReactionTarget struct {
	noteID     *uint
	commentID  *uint
	blogPostID *uint
}

// NoteTarget 给留言点赞
func NoteTarget(noteID uint) ReactionTarget {
	return ReactionTarget{noteID: &noteID}
}

// CommentTarget 给评论点赞
func CommentTarget(commentID uint) ReactionTarget {
	return ReactionTarget{commentID: &commentID}
}

// BlogTarget 给博客点赞
func BlogTarget(blogPostID uint) ReactionTarget {
	return ReactionTarget{blogPostID: &blogPostID}
}

func (t ReactionTarget) valid() bool {
	n := 0
	if t.noteID != nil {
		n++
	}
	if t.commentID != nil {
		n++
	}
	if t.blogPostID != nil {
		n++
	}
	return n == 1
}

func (t ReactionTarget) apply(query *gorm.DB) *gorm.DB {
	switch {
	case t.noteID != nil:
		return query.Where("note_id = ?", *t.noteID)
	case t.commentID != nil:
		return query.Where("comment_id = ?", *t.commentID)
	default:
		return query.Where("blog_post_id = ?", *t.blogPostID)
	}
}

// invalidate 点赞数出现在列表、详情和实体 tag 下，整组失效
func (t ReactionTarget) invalidate() {
	switch {
	case t.noteID != nil:
		utils.GetCache().InvalidateTags(TagPublicNotes, TagPrivateNotes, NoteTag(*t.noteID))
	case t.commentID != nil:
		// 评论的点赞数展示在父实体的评论列表里
		var comment models.Comment
		if err := db.DB.First(&comment, *t.commentID).Error; err == nil {
			parent := commentParentOf(&comment)
			if parent.valid() {
				utils.GetCache().InvalidateTags(append(parent.listingTags(), parent.tag())...)
			}
		}
	default:
		utils.GetCache().InvalidateTags(TagBlogs, BlogTag(*t.blogPostID))
	}
}

// AddReaction 添加一条点赞记录
// 点赞是匿名聚合计数，isAdmin 只区分普通/管理员两类
func AddReaction(target ReactionTarget, isAdmin bool) (*models.Reaction, error) {
	if !target.valid() {
		return nil, ErrInvalidTarget
	}

	reaction := models.Reaction{
		NoteID:     target.noteID,
		CommentID:  target.commentID,
		BlogPostID: target.blogPostID,
		IsAdmin:    isAdmin,
	}

	if err := db.DB.Create(&reaction).Error; err != nil {
		return nil, err
	}

	target.invalidate()
	return &reaction, nil
}

// RemoveReaction 撤销同类点赞中最新的一条
// 先读后删且没有行锁：两个并发撤销可能盯上同一行，点赞只是匿名计数器，这个竞态可以接受
func RemoveReaction(target ReactionTarget, isAdmin bool) error {
	if !target.valid() {
		return ErrInvalidTarget
	}

	var reaction models.Reaction
	query := target.apply(db.DB.Where("is_admin = ?", isAdmin))
	if err := query.Order("created_at DESC").First(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := db.DB.Delete(&reaction).Error; err != nil {
		return err
	}

	target.invalidate()
	return nil
}

// ReactionCounts 单个目标的两类点赞数，一次分组查询
func ReactionCounts(target ReactionTarget) (regular int64, admin int64, err error) {
	if !target.valid() {
		return 0, 0, ErrInvalidTarget
	}

	type countRow struct {
		IsAdmin bool
		Count   int64
	}
	var rows []countRow
	err = target.apply(db.DB.Model(&models.Reaction{})).
		Select("is_admin, COUNT(*) as count").
		Group("is_admin").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	for _, r := range rows {
		if r.IsAdmin {
			admin = r.Count
		} else {
			regular = r.Count
		}
	}
	return regular, admin, nil
}
