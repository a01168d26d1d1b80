package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	// 短词和虚词被过滤，大小写归一
	words := tokenize("Go is GREAT, really great! The end...")
	assert.Equal(t, []string{"great", "really", "great", "end"}, words)

	assert.Empty(t, tokenize("a b, cd!"))
}

func TestWordCloudCountsPublicNotesOnly(t *testing.T) {
	setupTestDB(t)

	_, err := CreateNote(CreateNoteInput{Content: "apple apple banana"})
	require.NoError(t, err)
	_, err = CreateNote(CreateNoteInput{Title: "apple", Content: "cherry"})
	require.NoError(t, err)
	// 私密留言不进词云
	_, err = CreateNote(CreateNoteInput{Content: "durian durian durian", IsPrivate: true})
	require.NoError(t, err)

	words, err := WordCloud(10)
	require.NoError(t, err)
	require.NotEmpty(t, words)

	assert.Equal(t, "apple", words[0].Word)
	assert.Equal(t, 3, words[0].Count)

	for _, w := range words {
		assert.NotEqual(t, "durian", w.Word)
	}
}

func TestWordCloudLimitClamped(t *testing.T) {
	setupTestDB(t)

	_, err := CreateNote(CreateNoteInput{Content: "alpha beta gamma"})
	require.NoError(t, err)

	words, err := WordCloud(2)
	require.NoError(t, err)
	assert.Len(t, words, 2)

	// 非法 limit 回落到默认上限
	words, err = WordCloud(-1)
	require.NoError(t, err)
	assert.Len(t, words, 3)
}
