package project

import (
	"math"
	"time"

	taskmodel "projectTracker/internal/models/task"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Stats - проект вместе с производными счётчиками задач.
// Прогресс никогда не хранится в БД, только вычисляется при чтении.
type Stats struct {
	Project        *Project
	TotalTasks     int
	CompletedTasks int
}

// Percentage возвращает процент выполнения, округлённый до 2 знаков.
// При нуле задач прогресс равен нулю.
func (s *Stats) Percentage() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return math.Round(float64(s.CompletedTasks)/float64(s.TotalTasks)*10000) / 100
}

// Detail - проект с полным списком задач (новые сверху).
type Detail struct {
	Project *Project
	Tasks   []*taskmodel.Task
}

// StatsOf считает счётчики по загруженному списку задач.
func StatsOf(p *Project, tasks []*taskmodel.Task) *Stats {
	completed := 0
	for _, t := range tasks {
		if t.IsCompleted {
			completed++
		}
	}
	return &Stats{
		Project:        p,
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
	}
}
