package services

import (
	"testing"
	"time"

	"freedomwall/internal/db"
	"freedomwall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionTargetExclusive(t *testing.T) {
	setupTestDB(t)

	_, err := AddReaction(ReactionTarget{}, false)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	assert.ErrorIs(t, RemoveReaction(ReactionTarget{}, false), ErrInvalidTarget)

	_, _, err = ReactionCounts(ReactionTarget{})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestReactionCountsByClass(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "受欢迎的留言"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := AddReaction(NoteTarget(note.ID), false)
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := AddReaction(NoteTarget(note.ID), true)
		require.NoError(t, err)
	}

	regular, admin, err := ReactionCounts(NoteTarget(note.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 3, regular)
	assert.EqualValues(t, 2, admin)
}

func TestRemoveNewestReaction(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)

	older, err := AddReaction(NoteTarget(note.ID), false)
	require.NoError(t, err)
	require.NoError(t, db.DB.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer, err := AddReaction(NoteTarget(note.ID), false)
	require.NoError(t, err)

	// 撤销命中最新的那条
	require.NoError(t, RemoveReaction(NoteTarget(note.ID), false))

	var remaining []models.Reaction
	require.NoError(t, db.DB.Where("note_id = ?", note.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, older.ID, remaining[0].ID)
	assert.NotEqual(t, newer.ID, remaining[0].ID)
}

func TestRemoveReactionMatchesClass(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)

	_, err = AddReaction(NoteTarget(note.ID), false)
	require.NoError(t, err)

	// 没有管理员赞可撤
	assert.ErrorIs(t, RemoveReaction(NoteTarget(note.ID), true), ErrNotFound)

	regular, admin, err := ReactionCounts(NoteTarget(note.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, regular)
	assert.EqualValues(t, 0, admin)
}

func TestRemoveReactionFromEmpty(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "没人赞的留言"})
	require.NoError(t, err)

	assert.ErrorIs(t, RemoveReaction(NoteTarget(note.ID), false), ErrNotFound)
}

func TestReactionsOnCommentAndBlog(t *testing.T) {
	setupTestDB(t)

	note, err := CreateNote(CreateNoteInput{Content: "留言"})
	require.NoError(t, err)
	comment, err := CreateComment(NoteParent(note.ID), CreateCommentInput{Content: "评论"})
	require.NoError(t, err)
	post, err := CreateBlogPost(CreateBlogPostInput{Title: "文章", Publish: true})
	require.NoError(t, err)

	_, err = AddReaction(CommentTarget(comment.ID), false)
	require.NoError(t, err)
	_, err = AddReaction(BlogTarget(post.ID), true)
	require.NoError(t, err)

	regular, admin, err := ReactionCounts(CommentTarget(comment.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, regular)
	assert.EqualValues(t, 0, admin)

	regular, admin, err = ReactionCounts(BlogTarget(post.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 0, regular)
	assert.EqualValues(t, 1, admin)

	// 三张外键列互斥，落库后只有对应列非空
	var r models.Reaction
	require.NoError(t, db.DB.Where("comment_id = ?", comment.ID).First(&r).Error)
	assert.Nil(t, r.NoteID)
	assert.Nil(t, r.BlogPostID)
}
