package models

import (
	"strings"
	"time"
)

type TaskType string

const (
	TaskTypeTask TaskType = "task"
	TaskTypeItem TaskType = "item"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
)

// Task is a to-do or "bring this" entry owned by a gathering. It has no
// identity outside its gathering and is destroyed with it.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
	Type       TaskType   `json:"type"`
	AssignedTo *string    `json:"assignedTo"`
	Status     TaskStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// FindTask returns the task with the given id, or nil.
func (g *Gathering) FindTask(taskID string) *Task {
	for i := range g.Tasks {
		if g.Tasks[i].ID == taskID {
			return &g.Tasks[i]
		}
	}
	return nil
}

// ToggleTask flips a task between pending and done. Absent ids are a no-op.
func (g *Gathering) ToggleTask(taskID string) bool {
	t := g.FindTask(taskID)
	if t == nil {
		return false
	}
	if t.Status == TaskStatusDone {
		t.Status = TaskStatusPending
	} else {
		t.Status = TaskStatusDone
	}
	return true
}

// EditTask replaces a task's fields. A blank new title keeps the old one; a
// task never persists with an empty title.
func (g *Gathering) EditTask(taskID, title, notes string, assignedTo *string) bool {
	t := g.FindTask(taskID)
	if t == nil {
		return false
	}
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		t.Title = trimmed
	}
	t.Notes = strings.TrimSpace(notes)
	if assignedTo != nil && strings.TrimSpace(*assignedTo) != "" {
		normalized := strings.ToLower(strings.TrimSpace(*assignedTo))
		t.AssignedTo = &normalized
	} else {
		t.AssignedTo = nil
	}
	return true
}

// DeleteTask removes a task by id. Absent ids are a no-op.
func (g *Gathering) DeleteTask(taskID string) bool {
	for i := range g.Tasks {
		if g.Tasks[i].ID == taskID {
			g.Tasks = append(g.Tasks[:i], g.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

type TaskRequest struct {
	Title      string   `json:"title" validate:"required"`
	Notes      string   `json:"notes"`
	Type       TaskType `json:"type"`
	AssignedTo *string  `json:"assignedTo"`
}

type EditTaskRequest struct {
	Title      string  `json:"title"`
	Notes      string  `json:"notes"`
	AssignedTo *string `json:"assignedTo"`
}
