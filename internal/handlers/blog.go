package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"freedomwall/internal/middleware"
	"freedomwall/internal/models"
	"freedomwall/internal/services"
	"freedomwall/internal/utils"

	"github.com/gin-gonic/gin"
)

// BlogHandler 博客页面和接口
type BlogHandler struct{}

func NewBlogHandler() *BlogHandler {
	return &BlogHandler{}
}

// List 博客列表页
func (h *BlogHandler) List(c *gin.Context) {
	page, err := services.FetchBlogsPage("", services.DefaultPageSize, false)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载博客失败")
		return
	}

	Render(c, http.StatusOK, "blog/list.html", gin.H{
		"Title":      "博客",
		"Posts":      page.Items,
		"NextCursor": page.NextCursor,
		"HasMore":    page.HasMore,
	})
}

// APIBlogs 无限滚动的取页接口 (GET /api/blogs)
func (h *BlogHandler) APIBlogs(c *gin.Context) {
	cursor := c.Query("cursor")
	pageSize := utils.StringToInt(c.DefaultQuery("page_size", "9"))

	page, err := services.FetchBlogsPage(cursor, pageSize, middleware.IsAdmin(c))
	if err != nil {
		actionError(c, err, "Failed to fetch blogs")
		return
	}

	c.JSON(http.StatusOK, page)
}

// blogDetailData 详情页的缓存载荷，写入缓存后只读
// 渲染用的 gin.H 每个请求现建，缓存里不存会被 Render 改写的 map
type blogDetailData struct {
	Post     *models.BlogPost
	Content  template.HTML
	Comments []models.Comment
}

// Detail 博客详情页，正文按 Markdown 渲染
func (h *BlogHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")
	isAdmin := middleware.IsAdmin(c)

	cacheKey := fmt.Sprintf("blog:detail:%s", slug)
	if !isAdmin {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if data, ok := cached.(*blogDetailData); ok {
				h.renderDetail(c, data)
				return
			}
		}
	}

	post, err := services.GetBlogPostBySlug(slug, isAdmin)
	if err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	regular, admin, err := services.ReactionCounts(services.BlogTarget(post.ID))
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载文章失败")
		return
	}
	post.ReactionCount = int(regular)
	post.AdminReactionCount = int(admin)

	commentCount, err := services.CountComments(services.BlogParent(post.ID), isAdmin)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载评论失败")
		return
	}
	post.CommentCount = int(commentCount)

	comments, err := services.ListComments(services.BlogParent(post.ID), isAdmin)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载评论失败")
		return
	}

	data := &blogDetailData{
		Post:     post,
		Content:  utils.RenderMarkdown(post.Content),
		Comments: comments,
	}

	if !isAdmin {
		utils.GetCache().Set(cacheKey, data, utils.DefaultCacheTTL, services.BlogTag(post.ID))
	}

	h.renderDetail(c, data)
}

func (h *BlogHandler) renderDetail(c *gin.Context, data *blogDetailData) {
	Render(c, http.StatusOK, "blog/detail.html", gin.H{
		"Title":       data.Post.Title,
		"Post":        data.Post,
		"PostContent": data.Content,
		"Comments":    data.Comments,
	})
}

// Create 管理员发布博客 (POST /api/blogs)
func (h *BlogHandler) Create(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	in := services.CreateBlogPostInput{
		Title:         c.PostForm("title"),
		Content:       c.PostForm("content"),
		Excerpt:       c.PostForm("excerpt"),
		CoverImageURL: c.PostForm("cover_image_url"),
		Publish:       parseBool(c.PostForm("publish")),
	}

	post, err := services.CreateBlogPost(in)
	if err != nil {
		actionError(c, err, "Failed to create blog post")
		return
	}

	actionOK(c, post.Slug)
}

// Update 管理员编辑博客 (POST /api/blogs/:slug)
func (h *BlogHandler) Update(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	in := services.UpdateBlogPostInput{}
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		in.Content = &v
	}
	if v, ok := c.GetPostForm("excerpt"); ok {
		in.Excerpt = &v
	}
	if v, ok := c.GetPostForm("cover_image_url"); ok {
		in.CoverImageURL = &v
	}

	post, err := services.UpdateBlogPost(c.Param("slug"), in)
	if err != nil {
		actionError(c, err, "Failed to update blog post")
		return
	}

	actionOK(c, post.Slug)
}

// TogglePublish 发布/撤回 (POST /api/blogs/:slug/publish)
func (h *BlogHandler) TogglePublish(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	post, err := services.ToggleBlogPublish(c.Param("slug"))
	if err != nil {
		actionError(c, err, "Failed to toggle publish")
		return
	}

	actionOK(c, post.Slug)
}

// TogglePin 置顶/取消置顶 (POST /api/blogs/:slug/pin)
func (h *BlogHandler) TogglePin(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	post, err := services.ToggleBlogPin(c.Param("slug"))
	if err != nil {
		actionError(c, err, "Failed to toggle pin")
		return
	}

	actionOK(c, post.Slug)
}

// Delete 管理员软删除博客 (DELETE /api/blogs/:slug)
func (h *BlogHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	if err := services.SoftDeleteBlogPost(c.Param("slug")); err != nil {
		actionError(c, err, "Failed to delete blog post")
		return
	}

	actionOK(c, "")
}
