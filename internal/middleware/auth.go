package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// RoleKey 请求上下文里的角色键
	RoleKey = "role"
	// RoleAdmin 管理员角色字面量，角色本身只是不透明字符串
	RoleAdmin = "admin"
	// SessionRoleKey 会话里存角色的键
	SessionRoleKey = "role"
)

// LoadActor 每个请求解析一次会话角色放进上下文
// 之后的 handler 只读上下文，不再碰会话；没有会话就是匿名访客
func LoadActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if role, ok := session.Get(SessionRoleKey).(string); ok && role != "" {
			c.Set(RoleKey, role)
		}
		c.Next()
	}
}

// CurrentRole 当前请求的角色，空串表示匿名
func CurrentRole(c *gin.Context) string {
	if role, ok := c.Get(RoleKey); ok {
		if s, ok := role.(string); ok {
			return s
		}
	}
	return ""
}

// IsAdmin 当前请求是否为管理员会话
func IsAdmin(c *gin.Context) bool {
	return CurrentRole(c) == RoleAdmin
}

// AdminRequired 管理页面的访问控制，未登录跳转到登录页
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
