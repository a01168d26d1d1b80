package services

import (
	"errors"
	"strings"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"gorm.io/gorm"
)

// CreateNoteInput 创建留言的参数
type CreateNoteInput struct {
	Title     string
	Content   string
	Author    string // 空串表示匿名
	ImageURL  string
	Color     string
	IsPrivate bool
	IsAdmin   bool // 由当前会话角色决定，落库后不可变
}

// CreateNote 在墙上创建一条留言
func CreateNote(in CreateNoteInput) (*models.Note, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrContentRequired
	}

	color := in.Color
	if color == "" {
		color = "white"
	}

	note := models.Note{
		Nid:       utils.RandID(8),
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Author:    strings.TrimSpace(in.Author),
		IsAdmin:   in.IsAdmin,
		ImageURL:  in.ImageURL,
		Color:     color,
		IsPrivate: in.IsPrivate,
	}

	if err := db.DB.Create(&note).Error; err != nil {
		return nil, err
	}

	invalidateNoteListings()
	return &note, nil
}

// UpdateNoteInput 管理员编辑留言的可选字段，nil 表示不改动
type UpdateNoteInput struct {
	Title     *string
	Content   *string
	Color     *string
	ImageURL  *string
	IsPrivate *bool
}

// UpdateNote 按 nid 部分更新留言，刷新 UpdatedAt
func UpdateNote(nid string, in UpdateNoteInput) (*models.Note, error) {
	note, err := GetNoteByNid(nid, true)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, ErrContentRequired
		}
		updates["content"] = *in.Content
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.IsPrivate != nil {
		updates["is_private"] = *in.IsPrivate
	}
	if len(updates) == 0 {
		return note, nil
	}

	if err := db.DB.Model(note).Updates(updates).Error; err != nil {
		return nil, err
	}

	invalidateNoteListings()
	utils.GetCache().InvalidateTags(NoteTag(note.ID))
	return note, nil
}

// GetNoteByNid 按对外 ID 查留言
// 软删除的留言一律视为不存在；includePrivate=false 时私密留言同样不可见
func GetNoteByNid(nid string, includePrivate bool) (*models.Note, error) {
	query := db.DB.Where("nid = ? AND is_deleted = ?", nid, false)
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	var note models.Note
	if err := query.First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// SoftDeleteNote 软删除留言：只翻标记，不删行，重复调用依旧成功
func SoftDeleteNote(nid string) error {
	result := db.DB.Model(&models.Note{}).
		Where("nid = ?", nid).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	invalidateNoteListings()
	var note models.Note
	if err := db.DB.Where("nid = ?", nid).First(&note).Error; err == nil {
		utils.GetCache().InvalidateTags(NoteTag(note.ID))
	}
	return nil
}

// ToggleNotePin 置顶/取消置顶
func ToggleNotePin(nid string) (*models.Note, error) {
	note, err := GetNoteByNid(nid, true)
	if err != nil {
		return nil, err
	}

	note.IsPinned = !note.IsPinned
	if err := db.DB.Model(note).Update("is_pinned", note.IsPinned).Error; err != nil {
		return nil, err
	}

	invalidateNoteListings()
	utils.GetCache().InvalidateTags(NoteTag(note.ID))
	return note, nil
}

// ToggleNotePrivacy 公开/私密切换
func ToggleNotePrivacy(nid string) (*models.Note, error) {
	note, err := GetNoteByNid(nid, true)
	if err != nil {
		return nil, err
	}

	note.IsPrivate = !note.IsPrivate
	if err := db.DB.Model(note).Update("is_private", note.IsPrivate).Error; err != nil {
		return nil, err
	}

	invalidateNoteListings()
	utils.GetCache().InvalidateTags(NoteTag(note.ID))
	return note, nil
}

// invalidateNoteListings 留言的任何写操作都会影响列表和词云，整组失效
func invalidateNoteListings() {
	utils.GetCache().InvalidateTags(TagPublicNotes, TagPrivateNotes, TagWordCloud)
	GetWordCloudService().ScheduleRefresh()
}
