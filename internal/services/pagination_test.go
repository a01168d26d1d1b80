package services

import (
	"testing"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesPageMath(t *testing.T) {
	setupTestDB(t)
	seedNotes(t, 22)

	// 22 条、每页 9 条 → 9 / 9 / 4
	page1, err := FetchNotesPage("", FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 9)
	assert.True(t, page1.HasMore)
	require.NotNil(t, page1.NextCursor)
	assert.Equal(t, "2", *page1.NextCursor)

	page2, err := FetchNotesPage(*page1.NextCursor, FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 9)
	assert.True(t, page2.HasMore)
	require.NotNil(t, page2.NextCursor)

	page3, err := FetchNotesPage(*page2.NextCursor, FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 4)
	assert.False(t, page3.HasMore)
	assert.Nil(t, page3.NextCursor)
}

func TestInvalidCursorFallsBackToFirstPage(t *testing.T) {
	setupTestDB(t)
	seedNotes(t, 12)

	first, err := FetchNotesPage("", FilterAll, SortNewest, 9, false)
	require.NoError(t, err)

	for _, cursor := range []string{"garbage", "0", "-3", "1.5"} {
		page, err := FetchNotesPage(cursor, FilterAll, SortNewest, 9, false)
		require.NoError(t, err)
		require.Len(t, page.Items, 9)
		assert.Equal(t, first.Items[0].Nid, page.Items[0].Nid, "坏游标 %q 应回落到第一页", cursor)
	}
}

func TestCursorBeyondLastPage(t *testing.T) {
	setupTestDB(t)
	seedNotes(t, 3)

	page, err := FetchNotesPage("5", FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestPinnedFilter(t *testing.T) {
	setupTestDB(t)
	notes := seedNotes(t, 22)

	_, err := ToggleNotePin(notes[0].Nid)
	require.NoError(t, err)
	_, err = ToggleNotePin(notes[5].Nid)
	require.NoError(t, err)

	// 22 条里只有 2 条置顶 → 一页装下，没有下一页
	page, err := FetchNotesPage("", FilterPinned, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestDefaultSortPinnedFirst(t *testing.T) {
	setupTestDB(t)
	notes := seedNotes(t, 5)

	// 把最老的一条置顶，它仍然要排在最前面
	_, err := ToggleNotePin(notes[0].Nid)
	require.NoError(t, err)

	page, err := FetchNotesPage("", FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, notes[0].Nid, page.Items[0].Nid)
	// 未置顶区间按最新在前
	assert.Equal(t, notes[4].Nid, page.Items[1].Nid)
}

func TestAuthorFilters(t *testing.T) {
	setupTestDB(t)

	_, err := CreateNote(CreateNoteInput{Content: "署名的", Author: "小红"})
	require.NoError(t, err)
	_, err = CreateNote(CreateNoteInput{Content: "匿名的"})
	require.NoError(t, err)
	_, err = CreateNote(CreateNoteInput{Content: "管理员说", IsAdmin: true})
	require.NoError(t, err)

	named, err := FetchNotesPage("", FilterNamed, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, named.Items, 1)
	assert.Equal(t, "小红", named.Items[0].Author)

	anonymous, err := FetchNotesPage("", FilterAnonymous, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, anonymous.Items, 2, "管理员留言没署名也算匿名")

	admin, err := FetchNotesPage("", FilterAdmin, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, admin.Items, 1)
	assert.True(t, admin.Items[0].IsAdmin)
}

func TestPrivateNotesOnlyInAdminListing(t *testing.T) {
	setupTestDB(t)

	_, err := CreateNote(CreateNoteInput{Content: "公开"})
	require.NoError(t, err)
	_, err = CreateNote(CreateNoteInput{Content: "私密", IsPrivate: true})
	require.NoError(t, err)

	public, err := FetchNotesPage("", FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, public.Items, 1)

	all, err := FetchNotesPage("", FilterAll, SortDefault, 9, true)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestSortByCommentCount(t *testing.T) {
	setupTestDB(t)
	notes := seedNotes(t, 3)

	for i := 0; i < 2; i++ {
		_, err := CreateComment(NoteParent(notes[0].ID), CreateCommentInput{Content: "顶"})
		require.NoError(t, err)
	}
	_, err := CreateComment(NoteParent(notes[2].ID), CreateCommentInput{Content: "顶"})
	require.NoError(t, err)

	page, err := FetchNotesPage("", FilterAll, SortMostComments, 9, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{
		page.Items[0].CommentCount,
		page.Items[1].CommentCount,
		page.Items[2].CommentCount,
	})

	least, err := FetchNotesPage("", FilterAll, SortLeastComments, 9, false)
	require.NoError(t, err)
	assert.Equal(t, 0, least.Items[0].CommentCount)
}

func TestSortByReactionCount(t *testing.T) {
	setupTestDB(t)
	notes := seedNotes(t, 2)

	// 旧的那条拿到更多赞（普通 + 管理员合计）
	_, err := AddReaction(NoteTarget(notes[0].ID), false)
	require.NoError(t, err)
	_, err = AddReaction(NoteTarget(notes[0].ID), true)
	require.NoError(t, err)
	_, err = AddReaction(NoteTarget(notes[1].ID), false)
	require.NoError(t, err)

	page, err := FetchNotesPage("", FilterAll, SortMostReactions, 9, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, notes[0].Nid, page.Items[0].Nid)
	assert.Equal(t, 1, page.Items[0].ReactionCount)
	assert.Equal(t, 1, page.Items[0].AdminReactionCount)
}

func TestNotesPageCached(t *testing.T) {
	setupTestDB(t)
	seedNotes(t, 3)

	page, err := FetchNotesPage("", FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	// 绕过服务层直接插库，不触发失效 → 还是缓存里的旧页
	require.NoError(t, db.DB.Create(&models.Note{Nid: "direct01", Content: "偷偷插入"}).Error)

	stale, err := FetchNotesPage("", FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, stale.Items, 3)

	utils.GetCache().InvalidateTags(TagPublicNotes)

	fresh, err := FetchNotesPage("", FilterAll, SortDefault, 9, false)
	require.NoError(t, err)
	assert.Len(t, fresh.Items, 4)
}

func TestBlogsPageDraftVisibility(t *testing.T) {
	setupTestDB(t)

	_, err := CreateBlogPost(CreateBlogPostInput{Title: "发布一", Publish: true})
	require.NoError(t, err)
	_, err = CreateBlogPost(CreateBlogPostInput{Title: "发布二", Publish: true})
	require.NoError(t, err)
	_, err = CreateBlogPost(CreateBlogPostInput{Title: "草稿"})
	require.NoError(t, err)

	public, err := FetchBlogsPage("", 9, false)
	require.NoError(t, err)
	assert.Len(t, public.Items, 2)
	assert.False(t, public.HasMore)

	all, err := FetchBlogsPage("", 9, true)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
}

func TestPageSizeClamped(t *testing.T) {
	setupTestDB(t)
	seedNotes(t, 2)

	// 非法 pageSize 回落到默认值，不报错
	page, err := FetchNotesPage("", FilterAll, SortDefault, -1, false)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}
