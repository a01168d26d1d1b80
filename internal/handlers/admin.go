package handlers

import (
	"net/http"

	"freedomwall/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理后台：查看私密内容、置顶、删除
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Dashboard 管理后台首页，含私密留言和未发布博客
// 路由组挂了 AdminRequired，这里不再重复校验
func (h *AdminHandler) Dashboard(c *gin.Context) {
	notes, err := services.FetchNotesPage("", services.FilterAll, services.SortDefault, services.DefaultPageSize, true)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载管理后台失败")
		return
	}

	blogs, err := services.FetchBlogsPage("", services.DefaultPageSize, true)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载管理后台失败")
		return
	}

	Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":          "管理后台",
		"Notes":          notes.Items,
		"NotesHasMore":   notes.HasMore,
		"NotesCursor":    notes.NextCursor,
		"Posts":          blogs.Items,
		"PostsHasMore":   blogs.HasMore,
		"PostsCursor":    blogs.NextCursor,
	})
}

// ToggleNotePin 置顶/取消置顶留言 (POST /api/notes/:nid/pin)
func (h *AdminHandler) ToggleNotePin(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	note, err := services.ToggleNotePin(c.Param("nid"))
	if err != nil {
		actionError(c, err, "Failed to toggle pin")
		return
	}

	actionOK(c, note.Nid)
}

// ToggleNotePrivacy 公开/私密切换 (POST /api/notes/:nid/privacy)
func (h *AdminHandler) ToggleNotePrivacy(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	note, err := services.ToggleNotePrivacy(c.Param("nid"))
	if err != nil {
		actionError(c, err, "Failed to toggle privacy")
		return
	}

	actionOK(c, note.Nid)
}

// UpdateNote 管理员编辑留言 (POST /api/notes/:nid)
func (h *AdminHandler) UpdateNote(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	in := services.UpdateNoteInput{}
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		in.Content = &v
	}
	if v, ok := c.GetPostForm("color"); ok {
		in.Color = &v
	}
	if v, ok := c.GetPostForm("image_url"); ok {
		in.ImageURL = &v
	}
	if v, ok := c.GetPostForm("is_private"); ok {
		b := parseBool(v)
		in.IsPrivate = &b
	}

	note, err := services.UpdateNote(c.Param("nid"), in)
	if err != nil {
		actionError(c, err, "Failed to update note")
		return
	}

	actionOK(c, note.Nid)
}

// DeleteNote 软删除留言 (DELETE /api/notes/:nid)
// 重复删除不报错，留言只是不可见，行还在
func (h *AdminHandler) DeleteNote(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	if err := services.SoftDeleteNote(c.Param("nid")); err != nil {
		actionError(c, err, "Failed to delete note")
		return
	}

	actionOK(c, "")
}
