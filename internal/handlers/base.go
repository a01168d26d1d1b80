package handlers

import (
	"errors"
	"log"
	"net/http"

	"freedomwall/internal/middleware"
	"freedomwall/internal/services"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like current role
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["IsAdmin"] = middleware.IsAdmin(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError 渲染错误页
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// 写操作统一响应 {success, error?, id?}，内部错误绝不抛给调用方

func actionOK(c *gin.Context, id string) {
	resp := gin.H{"success": true}
	if id != "" {
		resp["id"] = id
	}
	c.JSON(http.StatusOK, resp)
}

func actionFail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// actionError 把内部错误映射成对外响应
// 校验错误原样回显；找不到和基础设施错误只给通用提示，细节记在服务端日志里
func actionError(c *gin.Context, err error, fallback string) {
	switch {
	case services.IsValidationError(err):
		actionFail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		actionFail(c, http.StatusOK, fallback)
	default:
		log.Printf("%s: %v", fallback, err)
		actionFail(c, http.StatusOK, fallback)
	}
}

// requireAdmin 写接口的管理员校验，失败只返回笼统的 Unauthorized
func requireAdmin(c *gin.Context) bool {
	if !middleware.IsAdmin(c) {
		actionFail(c, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	return true
}
