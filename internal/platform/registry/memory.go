package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
)

// Memory is process-local task registry. Tasks are lost on restart.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]*models.ImportTask
}

// NewMemory returns new Memory.
func NewMemory() *Memory {
	return &Memory{
		tasks: make(map[string]*models.ImportTask),
	}
}

// CreateTask stores a copy of the task.
func (m *Memory) CreateTask(_ context.Context, task *models.ImportTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; ok {
		return fmt.Errorf("can't create task %q: already exists", task.ID)
	}
	m.tasks[task.ID] = task.Clone()

	return nil
}

// GetTask returns a copy of the task or platform.ErrTaskNotFound.
func (m *Memory) GetTask(_ context.Context, id string) (*models.ImportTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, platform.ErrTaskNotFound
	}

	return task.Clone(), nil
}

// SaveTask overwrites task status, progress, message and result. Stored logs are kept.
func (m *Memory) SaveTask(_ context.Context, task *models.ImportTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.tasks[task.ID]
	if !ok {
		return platform.ErrTaskNotFound
	}

	saved := task.Clone()
	saved.Logs = stored.Logs
	m.tasks[task.ID] = saved

	return nil
}

// AppendLog appends line to task logs.
func (m *Memory) AppendLog(_ context.Context, id string, line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.tasks[id]
	if !ok {
		return platform.ErrTaskNotFound
	}
	stored.Logs = append(stored.Logs, line)

	return nil
}
