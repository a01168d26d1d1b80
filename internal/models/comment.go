package models

import (
	"time"
)

// Comment 留言或博客下的评论
// NoteID 和 BlogPostID 互斥：一条评论只属于一个父实体，由应用层保证（见 services.CommentParent）
type Comment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Cid        string     `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	NoteID     *uint      `gorm:"index" json:"note_id"`
	Note       *Note      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BlogPostID *uint      `gorm:"index" json:"blog_post_id"`
	BlogPost   *BlogPost  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Author     string     `gorm:"size:50" json:"author"`
	IsAdmin    bool       `gorm:"default:false" json:"is_admin"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ImageURL   string     `json:"image_url"`
	Color      string     `gorm:"size:20;default:'white'" json:"color"`
	IsPrivate  bool       `gorm:"default:false;index" json:"is_private"`
	IsDeleted  bool       `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt  time.Time  `json:"created_at"`

	// 非数据库字段
	ReactionCount      int `gorm:"-" json:"reaction_count"`
	AdminReactionCount int `gorm:"-" json:"admin_reaction_count"`
}
