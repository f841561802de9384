package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskQuoteExpiryScan reports quotes whose validity date has passed.
	TaskQuoteExpiryScan = "quotes:expiry_scan"
)

// NewQuoteExpiryScanTask constructs the expiry scan task. It carries no
// payload; the handler works from current storage state.
func NewQuoteExpiryScanTask() *asynq.Task {
	return asynq.NewTask(TaskQuoteExpiryScan, nil)
}
