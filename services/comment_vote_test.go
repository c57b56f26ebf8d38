package services

import (
	"testing"

	"game-community-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertCommentParity(t *testing.T, db *gorm.DB, commentID uint) {
	t.Helper()
	var comment models.Comment
	require.NoError(t, db.First(&comment, commentID).Error)

	var likes, dislikes int64
	require.NoError(t, db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND liked = ?", commentID, true).Count(&likes).Error)
	require.NoError(t, db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND liked = ?", commentID, false).Count(&dislikes).Error)

	assert.Equal(t, int(likes), comment.Likes)
	assert.Equal(t, int(dislikes), comment.Dislikes)
}

func TestCommentVote_CastAndRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	game := createGame(t, db, "Hollow Depths")
	u1 := createUser(t, db, "u1@example.com")
	u2 := createUser(t, db, "u2@example.com")
	comment := createComment(t, db, game.ID, models.CommentTypeGame, u1.ID)

	require.NoError(t, svc.CastVote(comment.ID, u1.ID, true))
	require.NoError(t, svc.CastVote(comment.ID, u2.ID, false))
	assertCommentParity(t, db, comment.ID)

	var got models.Comment
	require.NoError(t, db.First(&got, comment.ID).Error)
	assert.Equal(t, 1, got.Likes)
	assert.Equal(t, 1, got.Dislikes)

	require.NoError(t, svc.RemoveVote(comment.ID, u2.ID))
	require.NoError(t, db.First(&got, comment.ID).Error)
	assert.Equal(t, 1, got.Likes)
	assert.Equal(t, 0, got.Dislikes)
	assertCommentParity(t, db, comment.ID)
}

func TestCommentVote_DuplicateRejectedWithoutMutation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	game := createGame(t, db, "Hollow Depths")
	u1 := createUser(t, db, "u1@example.com")
	comment := createComment(t, db, game.ID, models.CommentTypeGame, u1.ID)

	require.NoError(t, svc.CastVote(comment.ID, u1.ID, true))
	assert.ErrorIs(t, svc.CastVote(comment.ID, u1.ID, true), ErrDuplicateVote)
	assert.ErrorIs(t, svc.CastVote(comment.ID, u1.ID, false), ErrDuplicateVote)

	var count int64
	require.NoError(t, db.Model(&models.CommentVote{}).
		Where("comment_id = ?", comment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assertCommentParity(t, db, comment.ID)
}

func TestCommentVote_RemoveRequiresExisting(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	game := createGame(t, db, "Hollow Depths")
	u1 := createUser(t, db, "u1@example.com")
	comment := createComment(t, db, game.ID, models.CommentTypeGame, u1.ID)

	assert.ErrorIs(t, svc.RemoveVote(comment.ID, u1.ID), ErrVoteNotFound)
	assert.ErrorIs(t, svc.CastVote(999, u1.ID, true), ErrTargetNotFound)
	assertCommentParity(t, db, comment.ID)
}
