package handlers

import (
	"fmt"
	"net/http"

	"freedomwall/internal/middleware"
	"freedomwall/internal/models"
	"freedomwall/internal/services"
	"freedomwall/internal/utils"

	"github.com/gin-gonic/gin"
)

// WallHandler 留言墙页面和接口
type WallHandler struct{}

func NewWallHandler() *WallHandler {
	return &WallHandler{}
}

// List 留言墙首页，首屏数据直接渲染，后续由前端无限滚动拉取
func (h *WallHandler) List(c *gin.Context) {
	filter := services.Filter(c.DefaultQuery("filter", string(services.FilterAll)))
	sortBy := services.Sort(c.DefaultQuery("sort", string(services.SortDefault)))

	page, err := services.FetchNotesPage("", filter, sortBy, services.DefaultPageSize, false)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载留言墙失败")
		return
	}

	Render(c, http.StatusOK, "wall/list.html", gin.H{
		"Title":      "留言墙",
		"Notes":      page.Items,
		"NextCursor": page.NextCursor,
		"HasMore":    page.HasMore,
		"Filter":     string(filter),
		"Sort":       string(sortBy),
	})
}

// APINotes 无限滚动的取页接口 (GET /api/notes)
// cursor 对前端不透明，原样回传即可
func (h *WallHandler) APINotes(c *gin.Context) {
	cursor := c.Query("cursor")
	filter := services.Filter(c.DefaultQuery("filter", string(services.FilterAll)))
	sortBy := services.Sort(c.DefaultQuery("sort", string(services.SortDefault)))
	pageSize := utils.StringToInt(c.DefaultQuery("page_size", "9"))

	// 私密留言只进管理员视图
	page, err := services.FetchNotesPage(cursor, filter, sortBy, pageSize, middleware.IsAdmin(c))
	if err != nil {
		actionError(c, err, "Failed to fetch notes")
		return
	}

	c.JSON(http.StatusOK, page)
}

// noteDetailData 详情页的缓存载荷，写入缓存后只读
// Render 会往 gin.H 里注入请求级变量，所以渲染用的 map 必须每个请求现建，
// 不能把 gin.H 本身放进缓存给并发请求共用
type noteDetailData struct {
	Note     *models.Note
	Comments []models.Comment
}

// Detail 留言详情页：留言本体、两类点赞数和评论列表
func (h *WallHandler) Detail(c *gin.Context) {
	nid := c.Param("nid")
	isAdmin := middleware.IsAdmin(c)

	// 公共视图缓存不可变载荷，挂在该留言的 tag 下；管理员视图不走缓存
	cacheKey := fmt.Sprintf("note:detail:%s", nid)
	if !isAdmin {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if data, ok := cached.(*noteDetailData); ok {
				h.renderDetail(c, data)
				return
			}
		}
	}

	note, err := services.GetNoteByNid(nid, isAdmin)
	if err != nil {
		RenderError(c, http.StatusNotFound, "留言不存在")
		return
	}

	regular, admin, err := services.ReactionCounts(services.NoteTarget(note.ID))
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载留言失败")
		return
	}
	note.ReactionCount = int(regular)
	note.AdminReactionCount = int(admin)

	commentCount, err := services.CountComments(services.NoteParent(note.ID), isAdmin)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载评论失败")
		return
	}
	note.CommentCount = int(commentCount)

	comments, err := services.ListComments(services.NoteParent(note.ID), isAdmin)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载评论失败")
		return
	}

	data := &noteDetailData{Note: note, Comments: comments}
	if !isAdmin {
		utils.GetCache().Set(cacheKey, data, utils.DefaultCacheTTL, services.NoteTag(note.ID))
	}

	h.renderDetail(c, data)
}

func (h *WallHandler) renderDetail(c *gin.Context, data *noteDetailData) {
	Render(c, http.StatusOK, "wall/detail.html", gin.H{
		"Title":    "留言详情",
		"Note":     data.Note,
		"Comments": data.Comments,
	})
}

// Create 发布留言 (POST /api/notes)，匿名可用
func (h *WallHandler) Create(c *gin.Context) {
	in := services.CreateNoteInput{
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
		Author:    c.PostForm("author"),
		ImageURL:  c.PostForm("image_url"),
		Color:     c.PostForm("color"),
		IsPrivate: parseBool(c.PostForm("is_private")),
		IsAdmin:   middleware.IsAdmin(c),
	}

	note, err := services.CreateNote(in)
	if err != nil {
		actionError(c, err, "Failed to create note")
		return
	}

	actionOK(c, note.Nid)
}

// WordCloud 词云数据 (GET /api/wordcloud)
func (h *WallHandler) WordCloud(c *gin.Context) {
	limit := utils.StringToInt(c.DefaultQuery("limit", "40"))

	words, err := services.WordCloud(limit)
	if err != nil {
		actionError(c, err, "Failed to build word cloud")
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": words})
}

func parseBool(s string) bool {
	return s == "true" || s == "on" || s == "1"
}
