// services/scheduler.go
package services

import (
	"log"
	"time"

	"game-community-platform/models"

	"github.com/go-co-op/gocron/v2"
)

// StartPublishScheduler flips scheduled publications whose publish time has
// passed to published, once a minute.
func (s *PublicationService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var pubs []models.Publication
			now := time.Now()
			err := s.DB.Where("status = ? AND publish_at <= ?", models.PublicationStatusScheduled, now).
				Find(&pubs).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, p := range pubs {
				p.Status = models.PublicationStatusPublished
				p.PublishAt = nil
				if err := s.DB.Save(&p).Error; err != nil {
					log.Printf("[Scheduler] Failed to publish publication %d: %v", p.ID, err)
				} else {
					log.Printf("✅ Auto-published publication: %s", p.Title)
				}
			}
		}),
	)
}
