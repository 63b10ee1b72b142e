package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UpdateTaskInput carries the fields of a task update. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService manages task records. Every operation is scoped to the
// authenticated owner: listing only returns the owner's tasks, and
// touching someone else's task returns ErrNotOwned.
type TaskService struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a TaskService with the given dependencies.
func NewTaskService(taskStore store.TaskStore, log *slog.Logger) *TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_service")),
	}
}

// CreateTask creates a task owned by ownerID.
func (s *TaskService) CreateTask(ctx context.Context, ownerID uuid.UUID, title, description string, completed bool) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, description, completed)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", ownerID.String()))
	return task, nil
}

// GetTask retrieves a single task. A task owned by another user returns
// ErrNotOwned, not ErrTaskNotFound, so the caller can distinguish the two.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	return s.ownedTask(ctx, ownerID, taskID)
}

// ListTasks retrieves every task owned by ownerID.
func (s *TaskService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	return s.taskStore.ListByUserID(ctx, ownerID)
}

// UpdateTask applies a partial update to a task owned by ownerID.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task owned by ownerID.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, task.ID); err != nil {
		return err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("task deleted",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

// ownedTask loads a task and enforces ownership.
func (s *TaskService) ownedTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsOwnedBy(ownerID) {
		return nil, fmt.Errorf("%w: task %s", ErrNotOwned, taskID)
	}
	return task, nil
}
