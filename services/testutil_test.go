package services

import (
	"testing"

	"game-community-platform/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Rating{},
		&models.Publication{},
		&models.PublicationVote{},
		&models.Comment{},
		&models.CommentVote{},
		&models.Favourite{},
		&models.Event{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: email, Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createGame(t *testing.T, db *gorm.DB, title string) *models.Game {
	t.Helper()
	game := &models.Game{Title: title, Description: "d", Producer: "p"}
	require.NoError(t, db.Create(game).Error)
	return game
}

func createPublication(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Publication {
	t.Helper()
	pub := &models.Publication{
		Title:    title,
		Abstract: "a",
		Content:  "c",
		AuthorID: authorID,
		Status:   models.PublicationStatusPublished,
	}
	require.NoError(t, db.Create(pub).Error)
	return pub
}

func createComment(t *testing.T, db *gorm.DB, entityID uint, entityType models.CommentType, userID uint) *models.Comment {
	t.Helper()
	comment := &models.Comment{EntityID: entityID, Type: entityType, UserID: userID, Content: "hi"}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
