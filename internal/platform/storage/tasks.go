package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Tasks is durable import task registry. Tasks and their logs survive restarts
// and can be read by any service instance.
type Tasks struct {
	db    *sql.DB
	clock Clock
}

// NewTasks returns new Tasks.
func NewTasks(db *sql.DB, ops ...Option) Tasks {
	return Tasks{
		db:    db,
		clock: newOptions(ops).clock,
	}
}

// CreateTask inserts new task.
func (t Tasks) CreateTask(ctx context.Context, task *models.ImportTask) error {
	dbTask, err := toDBImportTask(task)
	if err != nil {
		return err
	}

	_, err = table.ImportTask.INSERT(table.ImportTask.AllColumns.Except(table.ImportTask.UpdatedAt)).
		MODEL(dbTask).
		ExecContext(ctx, t.db)
	if err != nil {
		return fmt.Errorf("can't insert task: %w", err)
	}

	return nil
}

// GetTask returns task with its logs or platform.ErrTaskNotFound.
func (t Tasks) GetTask(ctx context.Context, id string) (*models.ImportTask, error) {
	var task pgmodels.ImportTask
	err := table.ImportTask.SELECT(table.ImportTask.AllColumns).
		WHERE(table.ImportTask.ID.EQ(pg.String(id))).
		QueryContext(ctx, t.db, &task)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, platform.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get task: %w", err)
	}

	var logs []pgmodels.ImportTaskLog
	err = table.ImportTaskLog.SELECT(table.ImportTaskLog.AllColumns).
		WHERE(table.ImportTaskLog.TaskID.EQ(pg.String(id))).
		ORDER_BY(table.ImportTaskLog.ID.ASC()).
		QueryContext(ctx, t.db, &logs)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get task logs: %w", err)
	}

	return fromDBImportTask(&task, logs)
}

// SaveTask updates task status, progress, message and result.
func (t Tasks) SaveTask(ctx context.Context, task *models.ImportTask) error {
	dbTask, err := toDBImportTask(task)
	if err != nil {
		return err
	}
	dbTask.UpdatedAt = *t.clock.Now()

	result, err := table.ImportTask.UPDATE(
		table.ImportTask.Status,
		table.ImportTask.Progress,
		table.ImportTask.Message,
		table.ImportTask.Result,
		table.ImportTask.UpdatedAt,
	).
		MODEL(dbTask).
		WHERE(table.ImportTask.ID.EQ(pg.String(task.ID))).
		ExecContext(ctx, t.db)
	if err != nil {
		return fmt.Errorf("can't update task: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("can't update task: %w", err)
	} else if rowsAffected == 0 {
		return platform.ErrTaskNotFound
	}

	return nil
}

// AppendLog appends line to task logs.
func (t Tasks) AppendLog(ctx context.Context, id string, line string) error {
	_, err := table.ImportTaskLog.INSERT(table.ImportTaskLog.TaskID, table.ImportTaskLog.Line).
		VALUES(id, line).
		ExecContext(ctx, t.db)
	if err != nil {
		return fmt.Errorf("can't append task log: %w", err)
	}

	return nil
}
