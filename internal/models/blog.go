package models

import (
	"time"
)

// BlogPost 博客文章，仅管理员可创建
type BlogPost struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	// 唯一性只约束未删除的行（软删除的行会留在表里），由应用层生成时保证
	Slug          string     `gorm:"index;not null" json:"slug"` // 由标题生成，冲突时追加数字后缀
	Content       string     `gorm:"type:text" json:"content"`
	Excerpt       string     `gorm:"size:300" json:"excerpt"`
	CoverImageURL string     `json:"cover_image_url"`
	IsPublished   bool       `gorm:"default:false;index" json:"is_published"`
	PublishedAt   *time.Time `json:"published_at"` // 首次发布时写入，之后不再变更
	IsPinned      bool       `gorm:"default:false;index" json:"is_pinned"`
	IsDeleted     bool       `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// 非数据库字段
	CommentCount       int `gorm:"-" json:"comment_count"`
	ReactionCount      int `gorm:"-" json:"reaction_count"`
	AdminReactionCount int `gorm:"-" json:"admin_reaction_count"`
}
