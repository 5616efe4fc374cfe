package models

import (
	"github.com/MichalMitros/catalog-importer/internal/platform"
)

// TaskStatus is import task status.
type TaskStatus string

// Import task statuses. Status can only move forward: pending, processing, then done or error.
const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskDone       TaskStatus = "done"
	TaskError      TaskStatus = "error"
)

// IsTerminal reports whether status is final.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskDone || s == TaskError
}

// ImportResult holds running counters of import task.
type ImportResult struct {
	ProductsCreated  int      `json:"productsCreated"`
	ProductsUpdated  int      `json:"productsUpdated"`
	ImagesUploaded   int      `json:"imagesUploaded"`
	ReviewsGenerated int      `json:"reviewsGenerated"`
	Errors           []string `json:"errors"`
}

// ImportTask is batch import job record.
type ImportTask struct {
	ID       string        `json:"id"`
	Status   TaskStatus    `json:"status"`
	Progress int           `json:"progress"`
	Message  string        `json:"message"`
	Logs     []string      `json:"logs"`
	Result   *ImportResult `json:"result,omitempty"`
	// CreatedAt is unix timestamp in milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// NewImportTask returns new pending ImportTask.
func NewImportTask(id string, createdAt int64) *ImportTask {
	return &ImportTask{
		ID:        id,
		Status:    TaskPending,
		Message:   "task created, waiting to be processed",
		Logs:      []string{},
		CreatedAt: createdAt,
	}
}

// Start moves pending task into processing status.
func (t *ImportTask) Start(progress int, message string) error {
	if t.Status != TaskPending {
		return platform.ErrTaskFinished
	}
	t.Status = TaskProcessing
	t.Advance(progress, message)

	return nil
}

// Advance sets task message and raises its progress. Progress never decreases
// and stays below 100 until the task is completed.
func (t *ImportTask) Advance(progress int, message string) {
	progress = min(progress, 99)
	if progress > t.Progress {
		t.Progress = progress
	}
	t.Message = message
}

// Complete marks task as successfully done.
func (t *ImportTask) Complete(message string) error {
	if t.Status.IsTerminal() {
		return platform.ErrTaskFinished
	}
	t.Status = TaskDone
	t.Progress = 100
	t.Message = message

	return nil
}

// Fail marks task as failed. Progress is left untouched.
func (t *ImportTask) Fail(message string) error {
	if t.Status.IsTerminal() {
		return platform.ErrTaskFinished
	}
	t.Status = TaskError
	t.Message = message

	return nil
}

// Log appends line to task logs.
func (t *ImportTask) Log(line string) {
	t.Logs = append(t.Logs, line)
}

// Clone returns deep copy of the task.
func (t *ImportTask) Clone() *ImportTask {
	clone := *t
	clone.Logs = append(make([]string, 0, len(t.Logs)), t.Logs...)
	if t.Result != nil {
		result := *t.Result
		result.Errors = append(make([]string, 0, len(t.Result.Errors)), t.Result.Errors...)
		clone.Result = &result
	}

	return &clone
}
