package models

import (
	"time"
)

// Note 留言墙上的一条留言
type Note struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nid       string `gorm:"uniqueIndex;size:8;not null" json:"nid"`
	Title     string `json:"title"`                         // 可选标题
	Content   string `gorm:"type:text;not null" json:"content"`
	Author    string `gorm:"size:50" json:"author"`         // 显示昵称，空串表示匿名
	IsAdmin   bool   `gorm:"default:false" json:"is_admin"` // 创建时由会话角色写入，之后不可变
	ImageURL  string `json:"image_url"`
	Color     string `gorm:"size:20;default:'white'" json:"color"` // 便签背景色
	IsPrivate bool   `gorm:"default:false;index" json:"is_private"`
	IsPinned  bool   `gorm:"default:false;index" json:"is_pinned"`
	IsDeleted bool   `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，分页查询时批量填充
	CommentCount       int `gorm:"-" json:"comment_count"`
	ReactionCount      int `gorm:"-" json:"reaction_count"`
	AdminReactionCount int `gorm:"-" json:"admin_reaction_count"`
}
