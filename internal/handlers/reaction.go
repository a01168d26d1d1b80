package handlers

import (
	"net/http"

	"freedomwall/internal/middleware"
	"freedomwall/internal/services"

	"github.com/gin-gonic/gin"
)

// ReactionHandler 匿名点赞
type ReactionHandler struct{}

func NewReactionHandler() *ReactionHandler {
	return &ReactionHandler{}
}

// resolveTarget 把 :type/:id 解析成点赞目标
// id 统一用对外标识：留言 nid、评论 cid、博客 slug
func (h *ReactionHandler) resolveTarget(c *gin.Context) (services.ReactionTarget, bool) {
	itemType := c.Param("type")
	id := c.Param("id")

	switch itemType {
	case "note":
		note, err := services.GetNoteByNid(id, middleware.IsAdmin(c))
		if err != nil {
			actionError(c, err, "Failed to react")
			return services.ReactionTarget{}, false
		}
		return services.NoteTarget(note.ID), true
	case "comment":
		comment, err := services.GetCommentByCid(id)
		if err != nil {
			actionError(c, err, "Failed to react")
			return services.ReactionTarget{}, false
		}
		return services.CommentTarget(comment.ID), true
	case "blog":
		post, err := services.GetBlogPostBySlug(id, middleware.IsAdmin(c))
		if err != nil {
			actionError(c, err, "Failed to react")
			return services.ReactionTarget{}, false
		}
		return services.BlogTarget(post.ID), true
	default:
		actionFail(c, http.StatusBadRequest, services.ErrInvalidTarget.Error())
		return services.ReactionTarget{}, false
	}
}

// Add 点赞 (POST /api/reactions/:type/:id)
func (h *ReactionHandler) Add(c *gin.Context) {
	target, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	if _, err := services.AddReaction(target, middleware.IsAdmin(c)); err != nil {
		actionError(c, err, "Failed to react")
		return
	}

	regular, admin, err := services.ReactionCounts(target)
	if err != nil {
		actionError(c, err, "Failed to react")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"reactions":       regular,
		"admin_reactions": admin,
	})
}

// Remove 撤销同类点赞中最新的一条 (DELETE /api/reactions/:type/:id)
// 没有可撤销的点赞时当作无事发生
func (h *ReactionHandler) Remove(c *gin.Context) {
	target, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	err := services.RemoveReaction(target, middleware.IsAdmin(c))
	if err != nil && err != services.ErrNotFound {
		actionError(c, err, "Failed to remove reaction")
		return
	}

	regular, admin, err := services.ReactionCounts(target)
	if err != nil {
		actionError(c, err, "Failed to remove reaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"reactions":       regular,
		"admin_reactions": admin,
	})
}
