package services

import (
	"errors"
	"fmt"
	"strings"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"gorm.io/gorm"
)

// CommentParent 评论的父实体，留言 XOR 博客
// 只能通过构造函数创建，结构上保证互斥
type CommentParent struct {
	noteID     *uint
	blogPostID *uint
}

// NoteParent 留言下的评论
func NoteParent(noteID uint) CommentParent {
	return CommentParent{noteID: &noteID}
}

// BlogParent 博客下的评论
func BlogParent(blogPostID uint) CommentParent {
	return CommentParent{blogPostID: &blogPostID}
}

func (p CommentParent) valid() bool {
	return (p.noteID != nil) != (p.blogPostID != nil)
}

// apply 把父实体条件拼到查询上
func (p CommentParent) apply(query *gorm.DB) *gorm.DB {
	if p.noteID != nil {
		return query.Where("note_id = ?", *p.noteID)
	}
	return query.Where("blog_post_id = ?", *p.blogPostID)
}

// tag 父实体对应的缓存 tag
func (p CommentParent) tag() string {
	if p.noteID != nil {
		return NoteTag(*p.noteID)
	}
	return BlogTag(*p.blogPostID)
}

// listingTags 父实体所在列表的缓存 tag（评论数显示在列表里）
func (p CommentParent) listingTags() []string {
	if p.noteID != nil {
		return []string{TagPublicNotes, TagPrivateNotes}
	}
	return []string{TagBlogs}
}

// CreateCommentInput 创建评论的参数
type CreateCommentInput struct {
	Content   string
	Author    string
	ImageURL  string
	Color     string
	IsPrivate bool
	IsAdmin   bool
}

// CreateComment 在留言或博客下创建评论
func CreateComment(parent CommentParent, in CreateCommentInput) (*models.Comment, error) {
	if !parent.valid() {
		return nil, ErrInvalidTarget
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrContentRequired
	}

	color := in.Color
	if color == "" {
		color = "white"
	}

	comment := models.Comment{
		Cid:        utils.RandID(8),
		NoteID:     parent.noteID,
		BlogPostID: parent.blogPostID,
		Author:     strings.TrimSpace(in.Author),
		IsAdmin:    in.IsAdmin,
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		Color:      color,
		IsPrivate:  in.IsPrivate,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}

	// 评论数出现在列表和详情里，相关 tag 全部失效
	utils.GetCache().InvalidateTags(append(parent.listingTags(), parent.tag())...)
	return &comment, nil
}

// ListComments 列出父实体下的评论，时间正序，批量填充两类点赞数
// 结果按操作名+参数缓存，挂在父实体 tag 下
func ListComments(parent CommentParent, includePrivate bool) ([]models.Comment, error) {
	if !parent.valid() {
		return nil, ErrInvalidTarget
	}

	cacheKey := fmt.Sprintf("comments:%s:private:%t", parent.tag(), includePrivate)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if comments, ok := cached.([]models.Comment); ok {
			return comments, nil
		}
	}

	query := parent.apply(db.DB.Where("is_deleted = ?", false))
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	var comments []models.Comment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}

	if err := fillCommentReactionCounts(comments); err != nil {
		return nil, err
	}

	utils.GetCache().Set(cacheKey, comments, utils.DefaultCacheTTL, parent.tag())
	return comments, nil
}

// GetCommentByCid 按对外 ID 查评论，软删除视为不存在
func GetCommentByCid(cid string) (*models.Comment, error) {
	var comment models.Comment
	err := db.DB.Where("cid = ? AND is_deleted = ?", cid, false).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// SoftDeleteComment 软删除评论，重复调用依旧成功
func SoftDeleteComment(cid string) error {
	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := db.DB.Model(&comment).Update("is_deleted", true).Error; err != nil {
		return err
	}

	parent := commentParentOf(&comment)
	if parent.valid() {
		utils.GetCache().InvalidateTags(append(parent.listingTags(), parent.tag())...)
	}
	return nil
}

// commentParentOf 从已落库的评论还原父实体
func commentParentOf(comment *models.Comment) CommentParent {
	if comment.NoteID != nil {
		return NoteParent(*comment.NoteID)
	}
	if comment.BlogPostID != nil {
		return BlogParent(*comment.BlogPostID)
	}
	return CommentParent{}
}

// CountComments 父实体下未删除评论数
func CountComments(parent CommentParent, includePrivate bool) (int64, error) {
	if !parent.valid() {
		return 0, ErrInvalidTarget
	}

	query := parent.apply(db.DB.Model(&models.Comment{}).Where("is_deleted = ?", false))
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
