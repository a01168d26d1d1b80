package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"gorm.io/gorm"
)

// CreateBlogPostInput 创建博客的参数，仅管理员可用
type CreateBlogPostInput struct {
	Title         string
	Content       string
	Excerpt       string
	CoverImageURL string
	Publish       bool
}

// CreateBlogPost 创建博客文章，slug 由标题生成
func CreateBlogPost(in CreateBlogPostInput) (*models.BlogPost, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	slug, err := uniqueSlug(title)
	if err != nil {
		return nil, err
	}

	post := models.BlogPost{
		Title:         title,
		Slug:          slug,
		Content:       in.Content,
		Excerpt:       strings.TrimSpace(in.Excerpt),
		CoverImageURL: in.CoverImageURL,
	}
	if in.Publish {
		now := time.Now()
		post.IsPublished = true
		post.PublishedAt = &now
	}

	if err := db.DB.Create(&post).Error; err != nil {
		return nil, err
	}

	utils.GetCache().InvalidateTags(TagBlogs)
	return &post, nil
}

// uniqueSlug 生成在未删除博客中唯一的 slug，冲突时追加 -1、-2 …
func uniqueSlug(title string) (string, error) {
	base := utils.Slugify(title)
	slug := base
	for i := 1; ; i++ {
		var count int64
		err := db.DB.Model(&models.BlogPost{}).
			Where("slug = ? AND is_deleted = ?", slug, false).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// UpdateBlogPostInput 部分更新字段，nil 表示不改动。slug 创建后不变
type UpdateBlogPostInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	CoverImageURL *string
}

// UpdateBlogPost 按 slug 部分更新博客，刷新 UpdatedAt
func UpdateBlogPost(slug string, in UpdateBlogPostInput) (*models.BlogPost, error) {
	post, err := GetBlogPostBySlug(slug, true)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*in.Excerpt)
	}
	if in.CoverImageURL != nil {
		updates["cover_image_url"] = *in.CoverImageURL
	}
	if len(updates) == 0 {
		return post, nil
	}

	if err := db.DB.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}

	utils.GetCache().InvalidateTags(TagBlogs, BlogTag(post.ID))
	return post, nil
}

// GetBlogPostBySlug 按 slug 查博客
// 软删除视为不存在；includeUnpublished=false 时草稿不可见
func GetBlogPostBySlug(slug string, includeUnpublished bool) (*models.BlogPost, error) {
	query := db.DB.Where("slug = ? AND is_deleted = ?", slug, false)
	if !includeUnpublished {
		query = query.Where("is_published = ?", true)
	}

	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ToggleBlogPublish 发布/撤回
// PublishedAt 只在首次发布时写入，之后撤回再发布都不会重置
func ToggleBlogPublish(slug string) (*models.BlogPost, error) {
	post, err := GetBlogPostBySlug(slug, true)
	if err != nil {
		return nil, err
	}

	post.IsPublished = !post.IsPublished
	updates := map[string]interface{}{"is_published": post.IsPublished}
	if post.IsPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
		updates["published_at"] = &now
	}

	if err := db.DB.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}

	utils.GetCache().InvalidateTags(TagBlogs, BlogTag(post.ID))
	return post, nil
}

// ToggleBlogPin 置顶/取消置顶
func ToggleBlogPin(slug string) (*models.BlogPost, error) {
	post, err := GetBlogPostBySlug(slug, true)
	if err != nil {
		return nil, err
	}

	post.IsPinned = !post.IsPinned
	if err := db.DB.Model(post).Update("is_pinned", post.IsPinned).Error; err != nil {
		return nil, err
	}

	utils.GetCache().InvalidateTags(TagBlogs, BlogTag(post.ID))
	return post, nil
}

// SoftDeleteBlogPost 软删除博客，重复调用依旧成功
func SoftDeleteBlogPost(slug string) error {
	var post models.BlogPost
	if err := db.DB.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := db.DB.Model(&post).Update("is_deleted", true).Error; err != nil {
		return err
	}

	utils.GetCache().InvalidateTags(TagBlogs, BlogTag(post.ID))
	return nil
}
