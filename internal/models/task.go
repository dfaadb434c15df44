// internal/models/task.go
package models

import (
	"strings"
	"time"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusNew    TaskStatus = "new"
	StatusActive TaskStatus = "active"
	StatusClosed TaskStatus = "closed"
)

// TaskType defines the classification of a task.
type TaskType string

const (
	TypeTask    TaskType = "task"
	TypeBug     TaskType = "bug"
	TypeFeature TaskType = "feature"
	TypePBI     TaskType = "pbi"
	TypeEpic    TaskType = "epic"
)

// Человекочитаемые подписи для select'ов на фронте.
var TaskStatusLabels = map[TaskStatus]string{
	StatusNew:    "New",
	StatusActive: "Active",
	StatusClosed: "Closed",
}

var TaskTypeLabels = map[TaskType]string{
	TypeTask:    "Task",
	TypeBug:     "Bug",
	TypeFeature: "Feature",
	TypePBI:     "Product Backlog Item",
	TypeEpic:    "Epic",
}

func (s TaskStatus) Valid() bool {
	_, ok := TaskStatusLabels[s]
	return ok
}

func (s TaskStatus) Label() string { return TaskStatusLabels[s] }

func (t TaskType) Valid() bool {
	_, ok := TaskTypeLabels[t]
	return ok
}

func (t TaskType) Label() string { return TaskTypeLabels[t] }

// Task represents the structure of a task in the system.
type Task struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	EndDate   time.Time  `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"` // выставляется один раз, дальше не меняется
	TaskType  TaskType   `json:"task_type"`
	Status    TaskStatus `json:"status"`
	Tags      []Tag      `json:"tags"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	UserID  *int64
	Status  *TaskStatus
	Type    *TaskType
	EndDate *time.Time
	TagID   *int64
}

// TagNames returns the names of the task's tags, each exactly once,
// in the order the tag collection was loaded.
func (t *Task) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// TagsAsString joins TagNames with ", "; a task without tags yields "".
func (t *Task) TagsAsString() string {
	return strings.Join(t.TagNames(), ", ")
}

// ValidateTitle проверяет правило формы: название из минимум двух слов.
// Правило действует только на границе формы (Submit); прямое создание его обходит.
func ValidateTitle(title string) error {
	if len(strings.Fields(title)) < 2 {
		return NewValidationError("title must contain at least 2 words")
	}
	return nil
}

// DateOnly truncates t to midnight UTC so calendar-date equality behaves
// the same in the DATE column and in lookups.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
