package models

import (
	"time"
)

// Reaction 匿名点赞计数，不关联具体用户
// NoteID / CommentID / BlogPostID 三者互斥，由应用层保证（见 services.ReactionTarget）
type Reaction struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	NoteID     *uint `gorm:"index" json:"note_id"`
	CommentID  *uint `gorm:"index" json:"comment_id"`
	BlogPostID *uint `gorm:"index" json:"blog_post_id"`
	IsAdmin    bool  `gorm:"default:false" json:"is_admin"` // 区分普通/管理员两类计数
	CreatedAt  time.Time `json:"created_at"`
}
