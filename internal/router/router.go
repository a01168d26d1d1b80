package router

import (
	"freedomwall/internal/handlers"
	"freedomwall/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	wallHandler := handlers.NewWallHandler()
	commentHandler := handlers.NewCommentHandler()
	blogHandler := handlers.NewBlogHandler()
	reactionHandler := handlers.NewReactionHandler()
	authHandler := handlers.NewAuthHandler()
	adminHandler := handlers.NewAdminHandler()
	imageHandler := handlers.NewImageHandler()

	// 公共页面 (Public Pages)
	r.GET("/", wallHandler.List)            // 留言墙首页
	r.GET("/n/:nid", wallHandler.Detail)    // 留言详情
	r.GET("/blog", blogHandler.List)        // 博客列表
	r.GET("/blog/:slug", blogHandler.Detail) // 博客详情
	r.GET("/img/:id", imageHandler.Proxy)   // 图片反代

	r.GET("/admin/login", authHandler.ShowLogin) // 管理员登录页
	r.POST("/admin/login", authHandler.Login)    // 提交登录
	r.GET("/admin/logout", authHandler.Logout)   // 退出登录

	// 公共读接口 (Public Fetch API)
	api := r.Group("/api")
	{
		api.GET("/notes", wallHandler.APINotes)       // 留言取页
		api.GET("/blogs", blogHandler.APIBlogs)       // 博客取页
		api.GET("/wordcloud", wallHandler.WordCloud)  // 词云
	}

	// 匿名写接口，按 IP 限流 (Anonymous Write API)
	writes := r.Group("/api")
	writes.Use(middleware.RateLimit(rate.Limit(1), 5))
	{
		writes.POST("/notes", wallHandler.Create)                          // 发布留言
		writes.POST("/notes/:nid/comments", commentHandler.CreateOnNote)   // 评论留言
		writes.POST("/blog/:slug/comments", commentHandler.CreateOnBlog)   // 评论博客
		writes.POST("/reactions/:type/:id", reactionHandler.Add)           // 点赞
		writes.DELETE("/reactions/:type/:id", reactionHandler.Remove)      // 撤销点赞
		writes.POST("/upload", imageHandler.Upload)                        // 图片上传
	}

	// 管理员写接口 (Admin Write API)，handler 内部各自校验角色
	adminAPI := r.Group("/api")
	{
		adminAPI.POST("/notes/:nid", adminHandler.UpdateNote)              // 编辑留言
		adminAPI.POST("/notes/:nid/pin", adminHandler.ToggleNotePin)       // 置顶留言
		adminAPI.POST("/notes/:nid/privacy", adminHandler.ToggleNotePrivacy) // 公开/私密
		adminAPI.DELETE("/notes/:nid", adminHandler.DeleteNote)            // 删除留言
		adminAPI.DELETE("/comments/:cid", commentHandler.Delete)           // 删除评论

		adminAPI.POST("/blogs", blogHandler.Create)                 // 发布博客
		adminAPI.POST("/blogs/:slug", blogHandler.Update)           // 编辑博客
		adminAPI.POST("/blogs/:slug/publish", blogHandler.TogglePublish) // 发布/撤回
		adminAPI.POST("/blogs/:slug/pin", blogHandler.TogglePin)    // 置顶博客
		adminAPI.DELETE("/blogs/:slug", blogHandler.Delete)         // 删除博客
	}

	// 管理后台页面 (Admin Pages)
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("", adminHandler.Dashboard) // 后台首页
	}
}
