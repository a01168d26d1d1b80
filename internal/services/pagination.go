package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"gorm.io/gorm"
)

// DefaultPageSize 无限滚动每页条数
const DefaultPageSize = 9

const maxPageSize = 100

// Filter 列表筛选条件
type Filter string

const (
	FilterAll       Filter = "all"
	FilterAdmin     Filter = "admin"     // 管理员发布的
	FilterNamed     Filter = "named"     // 留了名字的
	FilterAnonymous Filter = "anonymous" // 匿名的
	FilterPinned    Filter = "pinned"    // 置顶的
)

// Sort 列表排序方式
type Sort string

const (
	SortDefault        Sort = "default" // 置顶在前，其余按最新
	SortNewest         Sort = "newest"
	SortOldest         Sort = "oldest"
	SortMostComments   Sort = "most_comments"
	SortLeastComments  Sort = "least_comments"
	SortMostReactions  Sort = "most_reactions"
	SortLeastReactions Sort = "least_reactions"
)

// NotesPage 留言分页结果，条目已填充好评论数和点赞数
type NotesPage struct {
	Items      []models.Note `json:"items"`
	NextCursor *string       `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

// BlogsPage 博客分页结果
type BlogsPage struct {
	Items      []models.BlogPost `json:"items"`
	NextCursor *string           `json:"next_cursor"`
	HasMore    bool              `json:"has_more"`
}

// decodeCursor 解析分页游标
// 游标对调用方不透明，实现上是 1 起始的页码字符串。
// 解析失败按第 1 页处理而不是报错：宽松处理坏游标，刷新即可恢复
func decodeCursor(cursor string) int {
	page, err := strconv.Atoi(cursor)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func encodeCursor(page int) *string {
	s := strconv.Itoa(page)
	return &s
}

func clampPageSize(pageSize int) int {
	if pageSize < 1 {
		return DefaultPageSize
	}
	if pageSize > maxPageSize {
		return maxPageSize
	}
	return pageSize
}

// FetchNotesPage 取一页留言
// cursor 为空表示第一页；超出末页返回空列表而不是错误。
// 结果整页缓存，挂在对应的留言列表 tag 下
func FetchNotesPage(cursor string, filter Filter, sortBy Sort, pageSize int, includePrivate bool) (*NotesPage, error) {
	page := decodeCursor(cursor)
	pageSize = clampPageSize(pageSize)

	listTag := TagPublicNotes
	if includePrivate {
		listTag = TagPrivateNotes
	}

	cacheKey := fmt.Sprintf("notes:page:%d:size:%d:filter:%s:sort:%s:private:%t",
		page, pageSize, filter, sortBy, includePrivate)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if result, ok := cached.(*NotesPage); ok {
			return result, nil
		}
	}

	base := noteFilterQuery(filter, includePrivate)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	result := &NotesPage{Items: []models.Note{}}
	if page <= totalPages {
		offset := (page - 1) * pageSize

		var notes []models.Note
		err := base.Session(&gorm.Session{}).
			Order(noteSQLOrder(sortBy)).
			Limit(pageSize).
			Offset(offset).
			Find(&notes).Error
		if err != nil {
			return nil, err
		}

		// 计数填充失败就让整页失败，不渲染数字残缺的页面
		if err := fillNoteCommentCounts(notes, includePrivate); err != nil {
			return nil, err
		}
		if err := fillNoteReactionCounts(notes); err != nil {
			return nil, err
		}

		sortNotesByCounts(notes, sortBy)
		result.Items = notes
	}

	result.HasMore = page < totalPages
	if result.HasMore {
		result.NextCursor = encodeCursor(page + 1)
	}

	utils.GetCache().Set(cacheKey, result, utils.DefaultCacheTTL, listTag)
	return result, nil
}

// noteFilterQuery 把筛选条件翻译成查询谓词
func noteFilterQuery(filter Filter, includePrivate bool) *gorm.DB {
	query := db.DB.Model(&models.Note{}).Where("is_deleted = ?", false)
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	switch filter {
	case FilterAdmin:
		query = query.Where("is_admin = ?", true)
	case FilterNamed:
		query = query.Where("author <> ''")
	case FilterAnonymous:
		query = query.Where("author = ''")
	case FilterPinned:
		query = query.Where("is_pinned = ?", true)
	}
	return query
}

// noteSQLOrder 数据库层排序
// 评论数/点赞数不是原生列，这两类排序先按默认顺序取页，再在内存里重排
func noteSQLOrder(sortBy Sort) string {
	switch sortBy {
	case SortNewest:
		return "created_at DESC"
	case SortOldest:
		return "created_at ASC"
	case SortDefault:
		// 置顶优先，分区内按最新
		return "is_pinned DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// sortNotesByCounts 按聚合计数对当前页做稳定重排
func sortNotesByCounts(notes []models.Note, sortBy Sort) {
	switch sortBy {
	case SortMostComments:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CommentCount > notes[j].CommentCount
		})
	case SortLeastComments:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CommentCount < notes[j].CommentCount
		})
	case SortMostReactions:
		sort.SliceStable(notes, func(i, j int) bool {
			return totalReactions(notes[i]) > totalReactions(notes[j])
		})
	case SortLeastReactions:
		sort.SliceStable(notes, func(i, j int) bool {
			return totalReactions(notes[i]) < totalReactions(notes[j])
		})
	}
}

func totalReactions(n models.Note) int {
	return n.ReactionCount + n.AdminReactionCount
}

// FetchBlogsPage 取一页博客，置顶优先，其余按发布时间倒序
// includeDrafts=true 时（管理后台）包含未发布的草稿
func FetchBlogsPage(cursor string, pageSize int, includeDrafts bool) (*BlogsPage, error) {
	page := decodeCursor(cursor)
	pageSize = clampPageSize(pageSize)

	cacheKey := fmt.Sprintf("blogs:page:%d:size:%d:drafts:%t", page, pageSize, includeDrafts)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if result, ok := cached.(*BlogsPage); ok {
			return result, nil
		}
	}

	base := db.DB.Model(&models.BlogPost{}).Where("is_deleted = ?", false)
	if !includeDrafts {
		base = base.Where("is_published = ?", true)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	result := &BlogsPage{Items: []models.BlogPost{}}
	if page <= totalPages {
		offset := (page - 1) * pageSize

		var posts []models.BlogPost
		err := base.Session(&gorm.Session{}).
			Order("is_pinned DESC, published_at DESC NULLS LAST, created_at DESC").
			Limit(pageSize).
			Offset(offset).
			Find(&posts).Error
		if err != nil {
			return nil, err
		}

		if err := fillBlogCommentCounts(posts); err != nil {
			return nil, err
		}
		if err := fillBlogReactionCounts(posts); err != nil {
			return nil, err
		}
		result.Items = posts
	}

	result.HasMore = page < totalPages
	if result.HasMore {
		result.NextCursor = encodeCursor(page + 1)
	}

	utils.GetCache().Set(cacheKey, result, utils.DefaultCacheTTL, TagBlogs)
	return result, nil
}
