package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func boolPtr(b bool) *bool { return &b }

// taskFixture returns a store mock holding one task owned by ownerID.
func taskFixture(t *testing.T, ownerID uuid.UUID) (*mocks.MockTaskStore, *domain.Task) {
	t.Helper()
	task, err := domain.NewTask(ownerID, "Write report", "Quarterly numbers", false)
	require.NoError(t, err)

	taskStore := &mocks.MockTaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			if id == task.ID {
				copied := *task
				return &copied, nil
			}
			return nil, store.ErrTaskNotFound
		},
	}
	return taskStore, task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("valid task", func(t *testing.T) {
		t.Parallel()

		var stored *domain.Task
		taskStore := &mocks.MockTaskStore{
			CreateFn: func(ctx context.Context, task *domain.Task) error {
				stored = task
				return nil
			},
		}
		svc := NewTaskService(taskStore, nil)

		task, err := svc.CreateTask(ctx, ownerID, "Write report", "Quarterly numbers", false)
		require.NoError(t, err)
		assert.Equal(t, ownerID, task.UserID)
		require.NotNil(t, stored)
		assert.Equal(t, task.ID, stored.ID)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()

		svc := NewTaskService(&mocks.MockTaskStore{}, nil)
		_, err := svc.CreateTask(ctx, ownerID, "", "", false)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})

	t.Run("owner no longer exists", func(t *testing.T) {
		t.Parallel()

		taskStore := &mocks.MockTaskStore{
			CreateFn: func(ctx context.Context, task *domain.Task) error {
				return store.ErrInvalidEntity
			},
		}
		svc := NewTaskService(taskStore, nil)
		_, err := svc.CreateTask(ctx, ownerID, "Write report", "", false)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestGetTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ownerID := uuid.New()

	taskStore, task := taskFixture(t, ownerID)
	svc := NewTaskService(taskStore, nil)

	t.Run("owner can read", func(t *testing.T) {
		t.Parallel()

		got, err := svc.GetTask(ctx, ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		t.Parallel()

		_, err := svc.GetTask(ctx, uuid.New(), task.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		_, err := svc.GetTask(ctx, ownerID, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("owner can update", func(t *testing.T) {
		t.Parallel()

		taskStore, task := taskFixture(t, ownerID)
		var updated *domain.Task
		taskStore.UpdateFn = func(ctx context.Context, task *domain.Task) error {
			updated = task
			return nil
		}
		svc := NewTaskService(taskStore, nil)

		got, err := svc.UpdateTask(ctx, ownerID, task.ID, UpdateTaskInput{
			Title:     strPtr("Write the report"),
			Completed: boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, "Write the report", got.Title)
		assert.True(t, got.Completed)
		assert.Equal(t, "Quarterly numbers", got.Description)
		require.NotNil(t, updated)
		assert.True(t, updated.Completed)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		t.Parallel()

		taskStore, task := taskFixture(t, ownerID)
		var updateCalled bool
		taskStore.UpdateFn = func(ctx context.Context, task *domain.Task) error {
			updateCalled = true
			return nil
		}
		svc := NewTaskService(taskStore, nil)

		_, err := svc.UpdateTask(ctx, uuid.New(), task.ID, UpdateTaskInput{Completed: boolPtr(true)})
		assert.ErrorIs(t, err, ErrNotOwned)
		assert.False(t, updateCalled)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		taskStore, _ := taskFixture(t, ownerID)
		svc := NewTaskService(taskStore, nil)

		_, err := svc.UpdateTask(ctx, ownerID, uuid.New(), UpdateTaskInput{Completed: boolPtr(true)})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		t.Parallel()

		taskStore, task := taskFixture(t, ownerID)
		svc := NewTaskService(taskStore, nil)

		_, err := svc.UpdateTask(ctx, ownerID, task.ID, UpdateTaskInput{Title: strPtr("")})
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()

		taskStore, task := taskFixture(t, ownerID)
		var deleted uuid.UUID
		taskStore.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		}
		svc := NewTaskService(taskStore, nil)

		require.NoError(t, svc.DeleteTask(ctx, ownerID, task.ID))
		assert.Equal(t, task.ID, deleted)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		t.Parallel()

		taskStore, task := taskFixture(t, ownerID)
		svc := NewTaskService(taskStore, nil)

		err := svc.DeleteTask(ctx, uuid.New(), task.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		taskStore, _ := taskFixture(t, ownerID)
		svc := NewTaskService(taskStore, nil)

		err := svc.DeleteTask(ctx, ownerID, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestListTasksScopedToOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ownerID := uuid.New()

	var requestedOwner uuid.UUID
	taskStore := &mocks.MockTaskStore{
		ListByUserIDFn: func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
			requestedOwner = userID
			return []*domain.Task{}, nil
		},
	}
	svc := NewTaskService(taskStore, nil)

	tasks, err := svc.ListTasks(ctx, ownerID)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.Equal(t, ownerID, requestedOwner)
}
