package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TaskFilter narrows and orders a task listing. SortBy must already be
// validated against the allowed column set by the service layer.
type TaskFilter struct {
	OwnerID uint
	Search  string
	SortBy  string
	Desc    bool
	Offset  int
	Limit   int
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error)
	ListByOwner(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{}).Where("owner_id = ?", filter.OwnerID)

	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}
	if filter.SortBy != "" {
		order := filter.SortBy
		if filter.Desc {
			order += " DESC"
		}
		query = query.Order(order)
	}

	var tasks []model.Task
	if err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}
