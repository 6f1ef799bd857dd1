package activity

import (
	"log/slog"

	"taskflow/internal/model"
	"taskflow/internal/store"
)

const queueSize = 64

type entry struct {
	userID      int64
	taskID      *int64
	action      model.Action
	description string
}

// Recorder appends audit entries off the request path. A single worker
// drains a buffered queue, so entries for one task are written in the
// order they were submitted while Record itself never blocks. A full
// queue or a store failure drops the entry and logs it; nothing ever
// reaches the caller.
type Recorder struct {
	store  *store.ActivityStore
	queue  chan entry
	done   chan struct{}
	logger *slog.Logger
}

func NewRecorder(s *store.ActivityStore, logger *slog.Logger) *Recorder {
	r := &Recorder{
		store:  s,
		queue:  make(chan entry, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	go r.run()
	return r
}

// Record enqueues one entry without blocking.
func (r *Recorder) Record(userID int64, taskID *int64, action model.Action, description string) {
	select {
	case r.queue <- entry{userID: userID, taskID: taskID, action: action, description: description}:
	default:
		r.logger.Warn("activity queue full, dropping entry",
			"user_id", userID, "action", string(action))
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (r *Recorder) Close() {
	close(r.queue)
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for e := range r.queue {
		if err := r.store.Record(e.userID, e.taskID, e.action, e.description); err != nil {
			r.logger.Error("record activity", "error", err)
		}
	}
}
