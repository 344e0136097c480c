package jobs

import (
	"fmt"
	"log"

	"github.com/omondi-dev/messagebox/cache"
	"github.com/omondi-dev/messagebox/models"
	"github.com/omondi-dev/messagebox/services"
	"gorm.io/gorm"
)

const digestBatchSize = 100

// DigestSchedule runs the digest at the top of every hour.
const DigestSchedule = "0 * * * *"

// DigestJob walks active users in fixed-size batches and logs how many
// unread messages each has waiting. Display labels are memoized in the
// injected cache since they are stable for the life of the process.
type DigestJob struct {
	db     *gorm.DB
	unread *services.UnreadService
	labels *cache.Cache
}

func NewDigestJob(db *gorm.DB, labels *cache.Cache) *DigestJob {
	return &DigestJob{
		db:     db,
		unread: services.NewUnreadService(db),
		labels: labels,
	}
}

func (j *DigestJob) Run() {
	log.Println("Running job: UnreadDigest...")

	var users []models.User
	result := j.db.
		Where("is_active = ?", true).
		FindInBatches(&users, digestBatchSize, func(tx *gorm.DB, batch int) error {
			for _, user := range users {
				count, err := j.unread.CountForUser(user.ID)
				if err != nil {
					return err
				}
				if count == 0 {
					continue
				}

				label, err := j.labels.GetOrCompute(user.ID.String(), func() (interface{}, error) {
					return fmt.Sprintf("%s %s <%s>", user.FirstName, user.LastName, user.Email), nil
				})
				if err != nil {
					return err
				}
				log.Printf("digest: %s has %d unread messages", label, count)
			}
			return nil
		})

	if result.Error != nil {
		log.Printf("Error running unread digest: %v", result.Error)
	}
}
