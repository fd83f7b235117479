package inmemory

import (
	"strings"
	"sync"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"

	"github.com/google/uuid"
)

// Storage - общее хранилище в памяти для всех сущностей. Один мьютекс на
// всё хранилище: каскадное удаление проекта с задачами происходит под одной
// блокировкой и потому атомарно.
type Storage struct {
	mtx sync.RWMutex

	users      map[uuid.UUID]*user.User
	emailIndex map[string]uuid.UUID

	projects   map[uuid.UUID]*project.Project
	projectIDs []uuid.UUID // порядок вставки = порядок создания

	tasks   map[uuid.UUID]*task.Task
	taskIDs []uuid.UUID
}

func NewStorage() *Storage {
	return &Storage{
		users:      make(map[uuid.UUID]*user.User),
		emailIndex: make(map[string]uuid.UUID),
		projects:   make(map[uuid.UUID]*project.Project),
		projectIDs: []uuid.UUID{},
		tasks:      make(map[uuid.UUID]*task.Task),
		taskIDs:    []uuid.UUID{},
	}
}

// matchesSearch - подстрочный поиск без учёта регистра по заголовку ИЛИ
// описанию; отсутствующее описание в поиске не участвует.
func matchesSearch(title string, description *string, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(title), search) {
		return true
	}
	if description != nil && strings.Contains(strings.ToLower(*description), search) {
		return true
	}
	return false
}

// paginate вырезает страницу из уже отфильтрованного набора.
func paginate[T any](items []T, page, limit int) []T {
	offset := (page - 1) * limit
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for ind, val := range ids {
		if val == id {
			return append(ids[:ind], ids[ind+1:]...)
		}
	}
	return ids
}
