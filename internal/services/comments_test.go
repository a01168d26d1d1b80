package services

import (
	"testing"
	"time"

	"freedomwall/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentParentExclusive(t *testing.T) {
	setupTestDB(t)

	// 零值父实体（既不是留言也不是博客）直接拒绝
	_, err := CreateComment(CommentParent{}, CreateCommentInput{Content: "无主评论"})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = ListComments(CommentParent{}, false)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = CountComments(CommentParent{}, false)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestCreateAndListComments(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "被评论的留言"})
	require.NoError(t, err)

	first, err := CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "先来"})
	require.NoError(t, err)
	require.NoError(t, db.DB.Model(first).Update("created_at", time.Now().Add(-time.Minute)).Error)

	second, err := CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "后到"})
	require.NoError(t, err)

	comments, err := ListComments(NoteParent(note.ID), false)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// 时间正序
	assert.Equal(t, first.Cid, comments[0].Cid)
	assert.Equal(t, second.Cid, comments[1].Cid)
}

func TestCommentRequiresContent(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)

	_, err = CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "  "})
	assert.ErrorIs(t, err, ErrContentRequired)
}

func TestPrivateCommentsVisibility(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)

	_, err = CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "公开评论"})
	require.NoError(t, err)
	_, err = CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "私密评论", IsPrivate: true})
	require.NoError(t, err)

	public, err := ListComments(NoteParent(note.ID), false)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := ListComments(NoteParent(note.ID), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := CountComments(NoteParent(note.ID), false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCommentListInvalidatedOnCreate(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)

	_, err = CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "第一条"})
	require.NoError(t, err)

	// 先读一次把列表灌进缓存
	cached, err := ListComments(NoteParent(note.ID), false)
	require.NoError(t, err)
	require.Len(t, cached, 1)

	// 新评论写入时按 tag 失效，下一次读必须看到它
	_, err = CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "第二条"})
	require.NoError(t, err)

	fresh, err := ListComments(NoteParent(note.ID), false)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestSoftDeleteComment(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)

	comment, err := CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "要删的评论"})
	require.NoError(t, err)

	require.NoError(t, SoftDeleteComment(comment.Cid))

	_, err = GetCommentByCid(comment.Cid)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := ListComments(NoteParent(note.ID), true)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// 重复删除依旧成功
	assert.NoError(t, SoftDeleteComment(comment.Cid))
	assert.ErrorIs(t, SoftDeleteComment("no-such"), ErrNotFound)
}

func TestBlogComments(t *testing.T) {
	setupTestDB(t)

	post, err := CreateBlogPost(CreateBlogPostInput{Title: "有评论的文章", Publish: true})
	require.NoError(t, err)

	_, err = CreateComment(BlogParent(post.ID), CreateCommentInput{Content: "写得好"})
	require.NoError(t, err)

	comments, err := ListComments(BlogParent(post.ID), false)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].BlogPostID)
	assert.Equal(t, post.ID, *comments[0].BlogPostID)
	assert.Nil(t, comments[0].NoteID)
}

func TestListCommentsFillsReactionCounts(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)
	comment, err := CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "被点赞的评论"})
	require.NoError(t, err)

	_, err = AddReaction(CommentTarget(comment.ID), false)
	require.NoError(t, err)
	_, err = AddReaction(CommentTarget(comment.ID), true)
	require.NoError(t, err)

	comments, err := ListComments(NoteParent(note.ID), false)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, comments[0].ReactionCount)
	assert.Equal(t, 1, comments[0].AdminReactionCount)
}
