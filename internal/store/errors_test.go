package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestSentinelErrorHierarchy(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, store.ErrUserNotFound, store.ErrNotFound)
	assert.ErrorIs(t, store.ErrTaskNotFound, store.ErrNotFound)
	assert.ErrorIs(t, store.ErrEmailExists, store.ErrDuplicate)

	assert.NotErrorIs(t, store.ErrUserNotFound, store.ErrTaskNotFound)
	assert.NotErrorIs(t, store.ErrEmailExists, store.ErrNotFound)
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "generic not found", err: store.ErrNotFound, want: true},
		{name: "user not found", err: store.ErrUserNotFound, want: true},
		{name: "wrapped task not found", err: fmt.Errorf("lookup: %w", store.ErrTaskNotFound), want: true},
		{name: "duplicate", err: store.ErrEmailExists, want: false},
		{name: "unrelated", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, store.IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsDuplicateError(store.ErrEmailExists))
	assert.True(t, store.IsDuplicateError(fmt.Errorf("create: %w", store.ErrDuplicate)))
	assert.False(t, store.IsDuplicateError(store.ErrNotFound))
}
