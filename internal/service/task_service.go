package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
)

// TaskService manages the task/item entries nested inside a gathering. The
// entry-level mutations live on models.Gathering; this service loads the
// owning gathering, applies them, and persists the result.
type TaskService struct {
	gatheringRepo *repository.GatheringRepository
	logger        *zap.Logger
	now           func() time.Time
}

func NewTaskService(gatheringRepo *repository.GatheringRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		gatheringRepo: gatheringRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// AddTask appends a task or item. assignedTo is stored as given; it is not
// validated against the current participant set.
func (s *TaskService) AddTask(gatheringID string, req models.TaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "required")
	}

	g, err := s.gatheringRepo.GetByID(gatheringID)
	if err != nil {
		return nil, err
	}

	taskType := req.Type
	if taskType != models.TaskTypeItem {
		taskType = models.TaskTypeTask
	}

	var assignedTo *string
	if req.AssignedTo != nil && strings.TrimSpace(*req.AssignedTo) != "" {
		normalized := strings.ToLower(strings.TrimSpace(*req.AssignedTo))
		assignedTo = &normalized
	}

	task := models.Task{
		ID:         uuid.NewString(),
		Title:      title,
		Notes:      strings.TrimSpace(req.Notes),
		Type:       taskType,
		AssignedTo: assignedTo,
		Status:     models.TaskStatusPending,
		CreatedAt:  s.now().UTC(),
	}
	g.Tasks = append(g.Tasks, task)

	if err := s.gatheringRepo.Save(g); err != nil {
		return nil, err
	}

	s.logger.Info("task added",
		zap.String("gathering", gatheringID),
		zap.String("task", task.ID),
		zap.String("type", string(taskType)),
	)
	return &task, nil
}

// ToggleStatus flips pending/done. An absent task id is a no-op.
func (s *TaskService) ToggleStatus(gatheringID, taskID string) (*models.Gathering, error) {
	g, err := s.gatheringRepo.GetByID(gatheringID)
	if err != nil {
		return nil, err
	}
	if g.ToggleTask(taskID) {
		if err := s.gatheringRepo.Save(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// EditTask replaces the task's fields; a blank title keeps the old one.
func (s *TaskService) EditTask(gatheringID, taskID string, req models.EditTaskRequest) (*models.Gathering, error) {
	g, err := s.gatheringRepo.GetByID(gatheringID)
	if err != nil {
		return nil, err
	}
	if g.EditTask(taskID, req.Title, req.Notes, req.AssignedTo) {
		if err := s.gatheringRepo.Save(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// DeleteTask removes the entry; absent ids are a no-op.
func (s *TaskService) DeleteTask(gatheringID, taskID string) (*models.Gathering, error) {
	g, err := s.gatheringRepo.GetByID(gatheringID)
	if err != nil {
		return nil, err
	}
	if g.DeleteTask(taskID) {
		if err := s.gatheringRepo.Save(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}
