package services

import (
	"fmt"
)

// 缓存逻辑 tag。写操作按 tag 广播失效：宁可整组清空，也不提供写后的旧数据。
const (
	TagPublicNotes  = "public-notes"
	TagPrivateNotes = "private-notes"
	TagBlogs        = "blogs"
	TagWordCloud    = "word-cloud"
)

// NoteTag 单条留言（详情页、评论列表）对应的 tag
func NoteTag(noteID uint) string {
	return fmt.Sprintf("note:%d", noteID)
}

// BlogTag 单篇博客对应的 tag
func BlogTag(blogID uint) string {
	return fmt.Sprintf("blog:%d", blogID)
}
