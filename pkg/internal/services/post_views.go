package services

import (
	"sync"

	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

var (
	postViewQueue   []models.PostView
	postViewQueueMu sync.Mutex
)

// AddPostView buffers a per-viewer view record. The aggregate view counter
// on the post moves synchronously at read time; this log is flushed in
// batches by the scheduler.
func AddPostView(postID, accountID uint) {
	postViewQueueMu.Lock()
	defer postViewQueueMu.Unlock()
	postViewQueue = append(postViewQueue, models.PostView{
		AccountID: accountID,
		PostID:    postID,
	})
}

func FlushPostViews() {
	postViewQueueMu.Lock()
	workingQueue := postViewQueue
	postViewQueue = nil
	postViewQueueMu.Unlock()

	if len(workingQueue) == 0 {
		return
	}

	// Repeat views of the same post by the same account collapse onto the
	// existing row.
	if err := database.C.
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(workingQueue, 1000).Error; err != nil {
		log.Warn().Err(err).Msg("An error occurred when flushing post views...")
		return
	}

	log.Debug().Int("count", len(workingQueue)).Msg("Flushed post views.")
}
