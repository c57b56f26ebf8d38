// workers/reconcile_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
)

// AggregateReconciler periodically re-derives the denormalized aggregates
// (game averages, like/dislike counters) from their vote ledgers. The write
// paths are transactional, so under normal operation this is a no-op; it
// heals rows written before the transactional paths existed or left behind
// by a crashed process.
type AggregateReconciler struct {
	DB *gorm.DB
}

func NewAggregateReconciler(db *gorm.DB) *AggregateReconciler {
	return &AggregateReconciler{DB: db}
}

// Run reconciles on a fixed interval until the context is cancelled.
func (r *AggregateReconciler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[Reconciler] started (every %s)", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[Reconciler] stopped")
			return
		case <-ticker.C:
			if err := r.Reconcile(); err != nil {
				log.Printf("[Reconciler] pass failed: %v", err)
			}
		}
	}
}

// Reconcile rewrites every aggregate from its ledger in three statements.
func (r *AggregateReconciler) Reconcile() error {
	if err := r.DB.Exec(`
		UPDATE games SET average_user_rate = COALESCE(
			(SELECT AVG(rating) FROM ratings WHERE ratings.game_id = games.id), 0)`,
	).Error; err != nil {
		return err
	}

	if err := r.DB.Exec(`
		UPDATE publications SET
			likes = (SELECT COUNT(*) FROM publication_votes v
				WHERE v.publication_id = publications.id AND v.liked = ?),
			dislikes = (SELECT COUNT(*) FROM publication_votes v
				WHERE v.publication_id = publications.id AND v.liked = ?)`,
		true, false,
	).Error; err != nil {
		return err
	}

	return r.DB.Exec(`
		UPDATE comments SET
			likes = (SELECT COUNT(*) FROM comment_votes v
				WHERE v.comment_id = comments.id AND v.liked = ?),
			dislikes = (SELECT COUNT(*) FROM comment_votes v
				WHERE v.comment_id = comments.id AND v.liked = ?)`,
		true, false,
	).Error
}
