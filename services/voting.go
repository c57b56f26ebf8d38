// services/voting.go
//
// Shared pieces of the voting/rating core. The three ledgers (ratings,
// publication votes, comment votes) are near-identical patterns; what they
// share lives here so a ledger write can never be split from its counter
// write.
package services

import (
	"errors"

	"game-community-platform/models"

	"gorm.io/gorm"
)

// Domain failures of the voting core. Handlers map these to 4xx responses;
// any other error is an infrastructure failure and maps to 500. A rejected
// request never mutates the ledger or a counter.
var (
	ErrDuplicateVote  = errors.New("user has already voted on this target")
	ErrVoteNotFound   = errors.New("no vote found for this target by this user")
	ErrRatingNotFound = errors.New("no rating found for this game by this user")
	ErrTargetNotFound = errors.New("target entity not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

func counterColumn(liked bool) string {
	if liked {
		return "likes"
	}
	return "dislikes"
}

// adjustCounter moves the likes or dislikes counter of the target row by
// delta with a single DB-side expression. Two concurrent votes on the same
// target serialize on the row update instead of racing a read-modify-write.
func adjustCounter(tx *gorm.DB, model interface{}, targetID uint, liked bool, delta int) error {
	col := counterColumn(liked)
	res := tx.Model(model).Where("id = ?", targetID).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTargetNotFound
	}
	return nil
}

// averageRating recomputes the mean over all live rating rows for a game.
// Full recomputation, not incremental: COALESCE handles the empty set (0).
func averageRating(tx *gorm.DB, gameID uint) (float64, error) {
	var avg float64
	err := tx.Model(&models.Rating{}).Where("game_id = ?", gameID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error
	return avg, err
}
