package repository

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func toDomainTask(m taskModel) domain.HousekeepingTask {
	t := domain.HousekeepingTask{
		ID:               strconv.FormatInt(m.ID, 10),
		TaskType:         domain.TaskType(m.TaskType),
		Priority:         domain.TaskPriority(m.Priority),
		Status:           domain.TaskStatus(m.Status),
		AssignedTo:       deref(m.AssignedTo),
		Description:      deref(m.Description),
		EstimatedMinutes: m.EstimatedMinutes,
		CreatedBy:        deref(m.CreatedBy),
		CreatedAt:        m.CreatedAt,
		StartedAt:        m.StartedAt,
		CompletedAt:      m.CompletedAt,
	}
	if m.RoomID != nil {
		t.RoomID = strconv.FormatInt(*m.RoomID, 10)
	}
	if m.Room != nil {
		t.RoomNumber = m.Room.Number
	}
	return t
}

func (r *TaskRepository) ListTasks(ctx context.Context, _ *session.Session, f source.Filter) ([]domain.HousekeepingTask, error) {
	q := r.db.WithContext(ctx).Preload("Room").Order("created_at ASC, id ASC")
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}

	var rows []taskModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list housekeeping tasks: %w", err)
	}
	out := make([]domain.HousekeepingTask, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainTask(m))
	}
	return out, nil
}

// Create inserts a task. Department defaults to housekeeping, or maintenance for maintenance tasks.
func (r *TaskRepository) Create(ctx context.Context, t *domain.HousekeepingTask, department string) error {
	if department == "" {
		department = "housekeeping"
		if t.TaskType == domain.TaskMaintenance {
			department = "maintenance"
		}
	}
	m := taskModel{
		TaskType:         string(t.TaskType),
		Priority:         string(t.Priority),
		Status:           string(t.Status),
		Department:       department,
		AssignedTo:       optional(t.AssignedTo),
		Description:      optional(t.Description),
		EstimatedMinutes: t.EstimatedMinutes,
		CreatedBy:        optional(t.CreatedBy),
		CreatedAt:        t.CreatedAt,
		StartedAt:        t.StartedAt,
		CompletedAt:      t.CompletedAt,
	}

	db := r.db.WithContext(ctx)
	if t.RoomNumber != "" {
		var room roomModel
		if err := db.Where("room_number = ?", t.RoomNumber).First(&room).Error; err != nil {
			return fmt.Errorf("find room %s: %w", t.RoomNumber, err)
		}
		m.RoomID = &room.ID
	}
	if err := db.Create(&m).Error; err != nil {
		return fmt.Errorf("create housekeeping task: %w", err)
	}
	t.ID = strconv.FormatInt(m.ID, 10)
	return nil
}
