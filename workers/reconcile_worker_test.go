package workers

import (
	"testing"

	"game-community-platform/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Game{}, &models.Rating{},
		&models.Publication{}, &models.PublicationVote{},
		&models.Comment{}, &models.CommentVote{},
	))
	return db
}

// Reconcile must rewrite drifted aggregates from the ledgers.
func TestReconcile_RepairsDriftedAggregates(t *testing.T) {
	db := newTestDB(t)

	game := models.Game{Title: "g", Description: "d", Producer: "p", AverageUserRate: 9.9}
	require.NoError(t, db.Create(&game).Error)
	require.NoError(t, db.Create(&models.Rating{UserID: 1, GameID: game.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&models.Rating{UserID: 2, GameID: game.ID, Rating: 2}).Error)

	pub := models.Publication{Title: "p", Abstract: "a", Content: "c", AuthorID: 1,
		Status: models.PublicationStatusPublished, Likes: 7, Dislikes: 7}
	require.NoError(t, db.Create(&pub).Error)
	require.NoError(t, db.Create(&models.PublicationVote{UserID: 1, PublicationID: pub.ID, Liked: true}).Error)
	require.NoError(t, db.Create(&models.PublicationVote{UserID: 2, PublicationID: pub.ID, Liked: false}).Error)

	comment := models.Comment{EntityID: game.ID, Type: models.CommentTypeGame, UserID: 1,
		Content: "hi", Likes: 5}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, NewAggregateReconciler(db).Reconcile())

	var gotGame models.Game
	require.NoError(t, db.First(&gotGame, game.ID).Error)
	assert.Equal(t, 3.0, gotGame.AverageUserRate)

	var gotPub models.Publication
	require.NoError(t, db.First(&gotPub, pub.ID).Error)
	assert.Equal(t, 1, gotPub.Likes)
	assert.Equal(t, 1, gotPub.Dislikes)

	var gotComment models.Comment
	require.NoError(t, db.First(&gotComment, comment.ID).Error)
	assert.Equal(t, 0, gotComment.Likes)
	assert.Equal(t, 0, gotComment.Dislikes)
}

// Ratingless games fall back to a zero average, not NULL.
func TestReconcile_EmptyLedgerMeansZero(t *testing.T) {
	db := newTestDB(t)

	game := models.Game{Title: "g", Description: "d", Producer: "p", AverageUserRate: 4.5}
	require.NoError(t, db.Create(&game).Error)

	require.NoError(t, NewAggregateReconciler(db).Reconcile())

	var got models.Game
	require.NoError(t, db.First(&got, game.ID).Error)
	assert.Equal(t, 0.0, got.AverageUserRate)
}
