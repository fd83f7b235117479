package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectTracker/internal/handlers"
	"projectTracker/internal/handlers/dto"
	"projectTracker/internal/middleware"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"
	"projectTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService - мок сервиса аутентификации
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, name, password string) (*user.User, error) {
	args := m.Called(ctx, email, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockProjectService - мок сервиса проектов
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetProjects(ctx context.Context, userID uuid.UUID, page, pageSize int, search string) (*service.Page[*project.Stats], error) {
	args := m.Called(ctx, userID, page, pageSize, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[*project.Stats]), args.Error(1)
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, projectID, userID uuid.UUID) (*project.Detail, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Detail), args.Error(1)
}

func (m *MockProjectService) CreateProject(ctx context.Context, userID uuid.UUID, title, description string) (*project.Stats, error) {
	args := m.Called(ctx, userID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Stats), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, title, description string) (*project.Stats, error) {
	args := m.Called(ctx, projectID, userID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Stats), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

func (m *MockProjectService) GetProgress(ctx context.Context, projectID, userID uuid.UUID) (*project.Stats, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Stats), args.Error(1)
}

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) GetTasks(ctx context.Context, projectID, userID uuid.UUID, page, pageSize int, search string, isCompleted *bool) (*service.Page[*task.Task], error) {
	args := m.Called(ctx, projectID, userID, page, pageSize, search, isCompleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[*task.Task]), args.Error(1)
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, taskID, projectID, userID uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, taskID, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, projectID, userID uuid.UUID, title, description string, dueDate *time.Time) (*task.Task, error) {
	args := m.Called(ctx, projectID, userID, title, description, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, taskID, projectID, userID uuid.UUID, title, description string, dueDate *time.Time) (*task.Task, error) {
	args := m.Called(ctx, taskID, projectID, userID, title, description, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) ToggleTask(ctx context.Context, taskID, projectID, userID uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, taskID, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, taskID, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, projectID, userID)
	return args.Error(0)
}

var (
	_ handlers.AuthService    = (*MockAuthService)(nil)
	_ handlers.ProjectService = (*MockProjectService)(nil)
	_ handlers.TaskService    = (*MockTaskService)(nil)
)

// asUser кладёт id пользователя в контекст так же, как middleware.Auth.
func asUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIdKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newRouter собирает маршруты так же, как их собирает main.
func newRouter(authed func(http.Handler) http.Handler, authSvc handlers.AuthService, projectSvc handlers.ProjectService, taskSvc handlers.TaskService) *chi.Mux {
	authHandler := handlers.NewAuthHandler(authSvc)
	projectHandler := handlers.NewProjectHandler(projectSvc)
	taskHandler := handlers.NewTaskHandler(taskSvc)

	r := chi.NewRouter()
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	r.Route("/projects", func(r chi.Router) {
		if authed != nil {
			r.Use(authed)
		}
		r.Get("/", projectHandler.GetProjects)
		r.Post("/", projectHandler.PostProject)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", projectHandler.GetProjectByID)
			r.Put("/", projectHandler.UpdateProjectByID)
			r.Delete("/", projectHandler.DeleteProjectByID)
			r.Get("/progress", projectHandler.GetProgress)
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.GetTasks)
				r.Post("/", taskHandler.PostTask)
				r.Route("/{taskID}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTaskByID)
					r.Put("/", taskHandler.UpdateTaskByID)
					r.Patch("/toggle", taskHandler.ToggleTask)
					r.Delete("/", taskHandler.DeleteTaskByID)
				})
			})
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestAuthHandler_Register тестирует регистрацию через HTTP
func TestAuthHandler_Register(t *testing.T) {
	t.Run("success - 201 with user body", func(t *testing.T) {
		created := &user.User{ID: uuid.New(), Email: "ivan@example.com", Name: "Иван"}

		mockAuth := new(MockAuthService)
		mockAuth.On("Register", mock.Anything, "ivan@example.com", "Иван", "secret-password").
			Return(created, nil)

		router := newRouter(nil, mockAuth, new(MockProjectService), new(MockTaskService))
		rec := doJSON(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
			Email: "ivan@example.com", Name: "Иван", Password: "secret-password",
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp dto.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, "ivan@example.com", resp.Email)
		// хэш пароля в ответ не попадает
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("error - 409 on taken email", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, service.NewEmailTaken("ivan@example.com"))

		router := newRouter(nil, mockAuth, new(MockProjectService), new(MockTaskService))
		rec := doJSON(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
			Email: "ivan@example.com", Name: "Иван", Password: "secret-password",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
	})

	t.Run("error - 415 without json content type", func(t *testing.T) {
		router := newRouter(nil, new(MockAuthService), new(MockProjectService), new(MockTaskService))

		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{}")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

// TestAuthHandler_Login тестирует вход через HTTP
func TestAuthHandler_Login(t *testing.T) {
	t.Run("success - 200 with token", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("Login", mock.Anything, "ivan@example.com", "secret-password").
			Return("signed-token", nil)

		router := newRouter(nil, mockAuth, new(MockProjectService), new(MockTaskService))
		rec := doJSON(t, router, http.MethodPost, "/auth/login", dto.LoginRequest{
			Email: "ivan@example.com", Password: "secret-password",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("error - 401 on bad credentials", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return("", service.NewInvalidCredentials())

		router := newRouter(nil, mockAuth, new(MockProjectService), new(MockTaskService))
		rec := doJSON(t, router, http.MethodPost, "/auth/login", dto.LoginRequest{
			Email: "ivan@example.com", Password: "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	})
}

// TestProjectHandlers тестирует HTTP-слой проектов
func TestProjectHandlers(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	t.Run("create - 201 with derived fields", func(t *testing.T) {
		stats := &project.Stats{Project: &project.Project{ID: projectID, OwnerID: userID, Title: "Launch"}}

		mockProjects := new(MockProjectService)
		mockProjects.On("CreateProject", mock.Anything, userID, "Launch", "").Return(stats, nil)

		router := newRouter(asUser(userID), new(MockAuthService), mockProjects, new(MockTaskService))
		rec := doJSON(t, router, http.MethodPost, "/projects/", dto.CreateProjectRequest{Title: "Launch"})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp dto.ProjectResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, projectID, resp.ID)
		assert.Zero(t, resp.TotalTasks)
		assert.Zero(t, resp.ProgressPercentage)
	})

	t.Run("create - 400 on validation error", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		mockProjects.On("CreateProject", mock.Anything, userID, "", "").
			Return(nil, service.NewValidationError("title", "не может быть пустым"))

		router := newRouter(asUser(userID), new(MockAuthService), mockProjects, new(MockTaskService))
		rec := doJSON(t, router, http.MethodPost, "/projects/", dto.CreateProjectRequest{Title: ""})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("list - 200 with page counters", func(t *testing.T) {
		page := &service.Page[*project.Stats]{
			Items:      []*project.Stats{{Project: &project.Project{ID: projectID, Title: "Launch"}, TotalTasks: 4, CompletedTasks: 2}},
			TotalCount: 11,
			PageNumber: 2,
			PageSize:   10,
			TotalPages: 2,
		}

		mockProjects := new(MockProjectService)
		mockProjects.On("GetProjects", mock.Anything, userID, 2, 10, "lau").Return(page, nil)

		router := newRouter(asUser(userID), new(MockAuthService), mockProjects, new(MockTaskService))
		rec := doJSON(t, router, http.MethodGet, "/projects/?page=2&page_size=10&search=lau", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.PageResponse[dto.ProjectResponse]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 11, resp.TotalCount)
		assert.Equal(t, 2, resp.TotalPages)
		require.Len(t, resp.Items, 1)
		assert.InDelta(t, 50.0, resp.Items[0].ProgressPercentage, 0.001)
	})

	t.Run("get - 404 on missing project", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		mockProjects.On("GetProjectByID", mock.Anything, projectID, userID).
			Return(nil, service.NewNotFound(service.ResourceProject, projectID.String()))

		router := newRouter(asUser(userID), new(MockAuthService), mockProjects, new(MockTaskService))
		rec := doJSON(t, router, http.MethodGet, "/projects/"+projectID.String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})

	t.Run("get - 400 on malformed id", func(t *testing.T) {
		router := newRouter(asUser(userID), new(MockAuthService), new(MockProjectService), new(MockTaskService))
		rec := doJSON(t, router, http.MethodGet, "/projects/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete - 204 without body", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		mockProjects.On("DeleteProject", mock.Anything, projectID, userID).Return(nil)

		router := newRouter(asUser(userID), new(MockAuthService), mockProjects, new(MockTaskService))
		rec := doJSON(t, router, http.MethodDelete, "/projects/"+projectID.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("progress - 200 with percentage", func(t *testing.T) {
		stats := &project.Stats{
			Project:        &project.Project{ID: projectID, Title: "Launch"},
			TotalTasks:     3,
			CompletedTasks: 1,
		}

		mockProjects := new(MockProjectService)
		mockProjects.On("GetProgress", mock.Anything, projectID, userID).Return(stats, nil)

		router := newRouter(asUser(userID), new(MockAuthService), mockProjects, new(MockTaskService))
		rec := doJSON(t, router, http.MethodGet, "/projects/"+projectID.String()+"/progress", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.ProgressResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.TotalTasks)
		assert.InDelta(t, 33.33, resp.ProgressPercentage, 0.001)
	})

	t.Run("unauthenticated - 401 before service is touched", func(t *testing.T) {
		mockProjects := new(MockProjectService)

		router := newRouter(nil, new(MockAuthService), mockProjects, new(MockTaskService))
		rec := doJSON(t, router, http.MethodGet, "/projects/", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockProjects.AssertNotCalled(t, "GetProjects")
	})
}

// TestTaskHandlers тестирует HTTP-слой задач
func TestTaskHandlers(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()
	base := "/projects/" + projectID.String() + "/tasks/"

	t.Run("create - 201", func(t *testing.T) {
		created := &task.Task{ID: taskID, ProjectID: projectID, Title: "Ship it"}

		mockTasks := new(MockTaskService)
		mockTasks.On("CreateTask", mock.Anything, projectID, userID, "Ship it", "", (*time.Time)(nil)).
			Return(created, nil)

		router := newRouter(asUser(userID), new(MockAuthService), new(MockProjectService), mockTasks)
		rec := doJSON(t, router, http.MethodPost, base, dto.CreateTaskRequest{Title: "Ship it"})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp dto.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, taskID, resp.ID)
		assert.False(t, resp.IsCompleted)
	})

	t.Run("list - 200 with completed filter passed through", func(t *testing.T) {
		page := &service.Page[*task.Task]{
			Items:      []*task.Task{{ID: taskID, ProjectID: projectID, IsCompleted: true}},
			TotalCount: 1, PageNumber: 1, PageSize: 10, TotalPages: 1,
		}

		mockTasks := new(MockTaskService)
		mockTasks.On("GetTasks", mock.Anything, projectID, userID, 0, 0, "",
			mock.MatchedBy(func(f *bool) bool { return f != nil && *f })).
			Return(page, nil)

		router := newRouter(asUser(userID), new(MockAuthService), new(MockProjectService), mockTasks)
		rec := doJSON(t, router, http.MethodGet, base+"?is_completed=true", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		mockTasks.AssertExpectations(t)
	})

	t.Run("list - 400 on malformed filter", func(t *testing.T) {
		mockTasks := new(MockTaskService)

		router := newRouter(asUser(userID), new(MockAuthService), new(MockProjectService), mockTasks)
		rec := doJSON(t, router, http.MethodGet, base+"?is_completed=banana", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockTasks.AssertNotCalled(t, "GetTasks")
	})

	t.Run("toggle - 200 with flipped status", func(t *testing.T) {
		completedAt := time.Now().UTC()
		toggled := &task.Task{ID: taskID, ProjectID: projectID, Title: "Ship it", IsCompleted: true, CompletedAt: &completedAt}

		mockTasks := new(MockTaskService)
		mockTasks.On("ToggleTask", mock.Anything, taskID, projectID, userID).Return(toggled, nil)

		router := newRouter(asUser(userID), new(MockAuthService), new(MockProjectService), mockTasks)
		rec := doJSON(t, router, http.MethodPatch, base+taskID.String()+"/toggle", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.IsCompleted)
		assert.NotNil(t, resp.CompletedAt)
	})

	t.Run("get - 404 when task is under another project", func(t *testing.T) {
		mockTasks := new(MockTaskService)
		mockTasks.On("GetTaskByID", mock.Anything, taskID, projectID, userID).
			Return(nil, service.NewNotFound(service.ResourceTask, taskID.String()))

		router := newRouter(asUser(userID), new(MockAuthService), new(MockProjectService), mockTasks)
		rec := doJSON(t, router, http.MethodGet, base+taskID.String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete - 204", func(t *testing.T) {
		mockTasks := new(MockTaskService)
		mockTasks.On("DeleteTask", mock.Anything, taskID, projectID, userID).Return(nil)

		router := newRouter(asUser(userID), new(MockAuthService), new(MockProjectService), mockTasks)
		rec := doJSON(t, router, http.MethodDelete, base+taskID.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
