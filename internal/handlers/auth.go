package handlers

import (
	"net/http"
	"os"

	"freedomwall/internal/middleware"
	"freedomwall/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler 管理员会话
// 站点只有一个管理员，密码哈希放在环境变量里，不建用户表
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if middleware.IsAdmin(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "管理员登录"})
}

// Login 校验密码，通过后在会话里写入角色
func (h *AuthHandler) Login(c *gin.Context) {
	password := c.PostForm("password")
	hash := os.Getenv("ADMIN_PASSWORD_HASH")

	if hash == "" || !utils.CheckPassword(password, hash) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "管理员登录",
			"Error": "密码错误",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionRoleKey, middleware.RoleAdmin)
	if err := session.Save(); err != nil {
		Render(c, http.StatusInternalServerError, "auth/login.html", gin.H{
			"Title": "管理员登录",
			"Error": "登录失败，请重试",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionRoleKey)
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
