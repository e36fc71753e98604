package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// MockTaskRepository is a mock implementation of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	done   chan struct{}
}

func (n *recordingNotifier) TaskCreated(ownerID uint, title string) {
	n.mu.Lock()
	n.events = append(n.events, title)
	n.mu.Unlock()
	close(n.done)
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:  "successful creation",
			title: "write report",
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
		},
		{
			name:          "blank title",
			title:         "   ",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrEmptyTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			task, err := service.CreateTask(context.Background(), 1, tt.title, "desc", false)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
				assert.Equal(t, uint(1), task.OwnerID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_CreateTaskNotifies(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	notifier := &recordingNotifier{done: make(chan struct{})}
	service := NewTaskService(mockRepo, notifier)

	_, err := service.CreateTask(context.Background(), 1, "write report", "", false)
	assert.NoError(t, err)

	select {
	case <-notifier.done:
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}
	assert.Equal(t, []string{"write report"}, notifier.events)
}

func TestTaskService_GetTaskScopedToOwner(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	// The repo is asked for id+owner together, so another user's task is
	// simply absent.
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(9), uint(1)).Return(nil, gorm.ErrRecordNotFound)

	service := NewTaskService(mockRepo, nil)
	task, err := service.GetTask(context.Background(), 1, 9)

	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	assert.Nil(t, task)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_ListTasksNormalizesParams(t *testing.T) {
	tests := []struct {
		name     string
		params   TaskListParams
		expected repository.TaskFilter
	}{
		{
			name:   "defaults",
			params: TaskListParams{},
			expected: repository.TaskFilter{
				OwnerID: 1,
				SortBy:  "id",
				Limit:   10,
			},
		},
		{
			name:   "whitelisted sort column with order",
			params: TaskListParams{SortBy: "title", Order: "desc", Limit: 25, Skip: 5},
			expected: repository.TaskFilter{
				OwnerID: 1,
				SortBy:  "title",
				Desc:    true,
				Offset:  5,
				Limit:   25,
			},
		},
		{
			name:   "unknown sort column falls back to id",
			params: TaskListParams{SortBy: "owner_id; DROP TABLE tasks"},
			expected: repository.TaskFilter{
				OwnerID: 1,
				SortBy:  "id",
				Limit:   10,
			},
		},
		{
			name:   "negative skip and oversized limit are clamped",
			params: TaskListParams{Skip: -3, Limit: 5000, Search: "report"},
			expected: repository.TaskFilter{
				OwnerID: 1,
				Search:  "report",
				SortBy:  "id",
				Limit:   100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			mockRepo.On("ListByOwner", mock.Anything, tt.expected).Return([]model.Task{}, nil)

			service := NewTaskService(mockRepo, nil)
			_, err := service.ListTasks(context.Background(), 1, tt.params)

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_UpdateTask(t *testing.T) {
	title := "  new title  "
	completed := true

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(9), uint(1)).Return(&model.Task{
		ID:          9,
		Title:       "old title",
		Description: "keep me",
		OwnerID:     1,
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockRepo, nil)
	task, err := service.UpdateTask(context.Background(), 1, 9, TaskUpdate{
		Title:     &title,
		Completed: &completed,
	})

	assert.NoError(t, err)
	assert.Equal(t, "new title", task.Title)
	assert.Equal(t, "keep me", task.Description)
	assert.True(t, task.Completed)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_UpdateTaskBlankTitle(t *testing.T) {
	blank := "   "

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(9), uint(1)).Return(&model.Task{ID: 9, OwnerID: 1}, nil)

	service := NewTaskService(mockRepo, nil)
	task, err := service.UpdateTask(context.Background(), 1, 9, TaskUpdate{Title: &blank})

	assert.ErrorIs(t, err, apperrors.ErrEmptyTitle)
	assert.Nil(t, task)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_DeleteTask(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMock: func(m *MockTaskRepository) {
				task := &model.Task{ID: 9, OwnerID: 1}
				m.On("FindByID", mock.Anything, uint(9)).Return(task, nil)
				m.On("Delete", mock.Anything, task).Return(nil)
			},
		},
		{
			name: "missing task",
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
		{
			name: "task owned by another user",
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(&model.Task{ID: 9, OwnerID: 2}, nil)
			},
			expectedError: apperrors.ErrTaskNotOwned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			task, err := service.DeleteTask(context.Background(), 1, 9)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
