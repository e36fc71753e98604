package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const (
	defaultTaskLimit = 10
	maxTaskLimit     = 100
)

// taskSortColumns is the explicit whitelist of sortable fields. Anything
// outside it silently falls back to the id ordering.
var taskSortColumns = map[string]bool{
	"id":        true,
	"title":     true,
	"completed": true,
}

// TaskListParams carries the raw listing options from the transport layer.
type TaskListParams struct {
	Skip   int
	Limit  int
	SortBy string
	Order  string
	Search string
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService exposes ownership-scoped task CRUD. Every operation takes
// the acting owner id; no call can see or touch another user's tasks.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uint, title, description string, completed bool) (*model.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uint) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID uint, params TaskListParams) ([]model.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uint, update TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uint) (*model.Task, error)
}

type taskService struct {
	repo     repository.TaskRepository
	notifier Notifier
}

// NewTaskService builds a TaskService. The notifier may be nil.
func NewTaskService(repo repository.TaskRepository, notifier Notifier) TaskService {
	return &taskService{repo: repo, notifier: notifier}
}

func (s *taskService) CreateTask(ctx context.Context, ownerID uint, title, description string, completed bool) (*model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.ErrEmptyTitle
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		Completed:   completed,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if s.notifier != nil {
		go s.notifier.TaskCreated(ownerID, task.Title)
	}
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, ownerID, taskID uint) (*model.Task, error) {
	task, err := s.repo.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, ownerID uint, params TaskListParams) ([]model.Task, error) {
	filter := repository.TaskFilter{
		OwnerID: ownerID,
		Search:  params.Search,
		SortBy:  "id",
		Desc:    params.Order == "desc",
		Offset:  params.Skip,
		Limit:   params.Limit,
	}
	if taskSortColumns[params.SortBy] {
		filter.SortBy = params.SortBy
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultTaskLimit
	}
	if filter.Limit > maxTaskLimit {
		filter.Limit = maxTaskLimit
	}
	return s.repo.ListByOwner(ctx, filter)
}

func (s *taskService) UpdateTask(ctx context.Context, ownerID, taskID uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.repo.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.ErrEmptyTitle
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = strings.TrimSpace(*update.Description)
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask looks the task up without the owner filter first so that a
// task owned by someone else yields a 403 rather than a 404, matching the
// delete semantics of the other task endpoints' callers.
func (s *taskService) DeleteTask(ctx context.Context, ownerID, taskID uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, apperrors.ErrTaskNotOwned
	}
	if err := s.repo.Delete(ctx, task); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return task, nil
}
