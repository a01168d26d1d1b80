package services

import (
	"freedomwall/internal/db"
	"freedomwall/internal/models"
)

// 批量聚合：一页数据只发一条分组查询，而不是每行一条

type reactionCountRow struct {
	ParentID uint
	IsAdmin  bool
	Count    int
}

type commentCountRow struct {
	ParentID uint
	Count    int
}

// fillNoteCommentCounts 批量填充留言的评论数量（只数未删除的）
func fillNoteCommentCounts(notes []models.Note, includePrivate bool) error {
	if len(notes) == 0 {
		return nil
	}

	noteIDs := make([]uint, len(notes))
	for i, n := range notes {
		noteIDs[i] = n.ID
	}

	query := db.DB.Model(&models.Comment{}).
		Select("note_id as parent_id, COUNT(*) as count").
		Where("note_id IN ? AND is_deleted = ?", noteIDs, false)
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	var rows []commentCountRow
	if err := query.Group("note_id").Scan(&rows).Error; err != nil {
		return err
	}

	countMap := make(map[uint]int)
	for _, r := range rows {
		countMap[r.ParentID] = r.Count
	}
	for i := range notes {
		notes[i].CommentCount = countMap[notes[i].ID]
	}
	return nil
}

// fillNoteReactionCounts 批量填充留言的两类点赞数量
func fillNoteReactionCounts(notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	noteIDs := make([]uint, len(notes))
	for i, n := range notes {
		noteIDs[i] = n.ID
	}

	var rows []reactionCountRow
	err := db.DB.Model(&models.Reaction{}).
		Select("note_id as parent_id, is_admin, COUNT(*) as count").
		Where("note_id IN ?", noteIDs).
		Group("note_id, is_admin").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	regular := make(map[uint]int)
	admin := make(map[uint]int)
	for _, r := range rows {
		if r.IsAdmin {
			admin[r.ParentID] = r.Count
		} else {
			regular[r.ParentID] = r.Count
		}
	}
	for i := range notes {
		notes[i].ReactionCount = regular[notes[i].ID]
		notes[i].AdminReactionCount = admin[notes[i].ID]
	}
	return nil
}

// fillCommentReactionCounts 批量填充评论的两类点赞数量
func fillCommentReactionCounts(comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	commentIDs := make([]uint, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	var rows []reactionCountRow
	err := db.DB.Model(&models.Reaction{}).
		Select("comment_id as parent_id, is_admin, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id, is_admin").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	regular := make(map[uint]int)
	admin := make(map[uint]int)
	for _, r := range rows {
		if r.IsAdmin {
			admin[r.ParentID] = r.Count
		} else {
			regular[r.ParentID] = r.Count
		}
	}
	for i := range comments {
		comments[i].ReactionCount = regular[comments[i].ID]
		comments[i].AdminReactionCount = admin[comments[i].ID]
	}
	return nil
}

// fillBlogCommentCounts 批量填充博客的评论数量
func fillBlogCommentCounts(posts []models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var rows []commentCountRow
	err := db.DB.Model(&models.Comment{}).
		Select("blog_post_id as parent_id, COUNT(*) as count").
		Where("blog_post_id IN ? AND is_deleted = ? AND is_private = ?", postIDs, false, false).
		Group("blog_post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	countMap := make(map[uint]int)
	for _, r := range rows {
		countMap[r.ParentID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}

// fillBlogReactionCounts 批量填充博客的两类点赞数量
func fillBlogReactionCounts(posts []models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var rows []reactionCountRow
	err := db.DB.Model(&models.Reaction{}).
		Select("blog_post_id as parent_id, is_admin, COUNT(*) as count").
		Where("blog_post_id IN ?", postIDs).
		Group("blog_post_id, is_admin").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	regular := make(map[uint]int)
	admin := make(map[uint]int)
	for _, r := range rows {
		if r.IsAdmin {
			admin[r.ParentID] = r.Count
		} else {
			regular[r.ParentID] = r.Count
		}
	}
	for i := range posts {
		posts[i].ReactionCount = regular[posts[i].ID]
		posts[i].AdminReactionCount = admin[posts[i].ID]
	}
	return nil
}
