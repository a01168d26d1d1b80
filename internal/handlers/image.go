package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"freedomwall/internal/services"

	"github.com/gin-gonic/gin"
)

// ImageHandler 图片上传与反代
type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// Upload 处理图片上传请求 (POST /api/upload)
// 应用只保存返回的 URL，图片内容托管在图床
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "请选择要上传的图片",
		})
		return
	}
	defer file.Close()

	// 验证文件类型
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "只允许上传图片文件",
		})
		return
	}

	// 验证文件大小（限制 4MB）
	if header.Size > services.MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "图片大小不能超过 4MB",
		})
		return
	}

	result, err := services.UploadImage(file, header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "上传失败，请稍后重试",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     result.URL,
		"id":      result.ID,
	})
}

// Proxy 反代图床图片 (GET /img/:id)
func (h *ImageHandler) Proxy(c *gin.Context) {
	imageID := c.Param("id")
	if imageID == "" {
		c.String(http.StatusBadRequest, "缺少图片 ID")
		return
	}

	ext := filepath.Ext(imageID)
	id := strings.TrimSuffix(imageID, ext)
	if ext == "" {
		ext = ".jpg" // 默认扩展名
	}

	imgurURL := fmt.Sprintf("https://i.imgur.com/%s%s", id, ext)

	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequest("GET", imgurURL, nil)
	if err != nil {
		c.String(http.StatusInternalServerError, "请求创建失败")
		return
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		c.String(http.StatusBadGateway, "获取图片失败")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.String(resp.StatusCode, "图片不存在")
		return
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		c.Header("Content-Type", contentType)
	}

	// 缓存 7 天
	c.Header("Cache-Control", "public, max-age=604800")

	c.Status(http.StatusOK)
	io.Copy(c.Writer, resp.Body)
}
