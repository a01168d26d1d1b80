package handlers

import (
	"freedomwall/internal/middleware"
	"freedomwall/internal/services"

	"github.com/gin-gonic/gin"
)

// CommentHandler 留言和博客下的评论
type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// CreateOnNote 给留言发评论 (POST /api/notes/:nid/comments)
func (h *CommentHandler) CreateOnNote(c *gin.Context) {
	nid := c.Param("nid")

	note, err := services.GetNoteByNid(nid, middleware.IsAdmin(c))
	if err != nil {
		actionError(c, err, "Failed to create comment")
		return
	}

	h.create(c, services.NoteParent(note.ID))
}

// CreateOnBlog 给博客发评论 (POST /api/blog/:slug/comments)
func (h *CommentHandler) CreateOnBlog(c *gin.Context) {
	slug := c.Param("slug")

	post, err := services.GetBlogPostBySlug(slug, middleware.IsAdmin(c))
	if err != nil {
		actionError(c, err, "Failed to create comment")
		return
	}

	h.create(c, services.BlogParent(post.ID))
}

func (h *CommentHandler) create(c *gin.Context, parent services.CommentParent) {
	in := services.CreateCommentInput{
		Content:   c.PostForm("content"),
		Author:    c.PostForm("author"),
		ImageURL:  c.PostForm("image_url"),
		Color:     c.PostForm("color"),
		IsPrivate: parseBool(c.PostForm("is_private")),
		IsAdmin:   middleware.IsAdmin(c),
	}

	comment, err := services.CreateComment(parent, in)
	if err != nil {
		actionError(c, err, "Failed to create comment")
		return
	}

	actionOK(c, comment.Cid)
}

// Delete 管理员软删除评论 (DELETE /api/comments/:cid)
func (h *CommentHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	if err := services.SoftDeleteComment(c.Param("cid")); err != nil {
		actionError(c, err, "Failed to delete comment")
		return
	}

	actionOK(c, "")
}
