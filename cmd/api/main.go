package main

import (
	"context"
	"net/http"
	"os"

	"projectTracker/internal/config"
	"projectTracker/internal/handlers"
	"projectTracker/internal/logger"
	"projectTracker/internal/middleware"
	"projectTracker/internal/repository/tracker/inmemory"
	"projectTracker/internal/repository/tracker/postgres"
	"projectTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("config.yml")
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Logging.Development)
	defer logger.Sync()

	var userRepo service.UserRepository
	var projectRepo service.ProjectRepository
	var taskRepo service.TaskRepository

	switch cfg.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("Не удалось подключиться к PostgreSQL", err)
			os.Exit(1)
		}
		defer storage.Close()

		userRepo = storage.Users()
		projectRepo = storage.Projects()
		taskRepo = storage.Tasks()
	default:
		storage := inmemory.NewStorage()
		userRepo = storage.Users()
		projectRepo = storage.Projects()
		taskRepo = storage.Tasks()
	}

	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	projectService := service.NewProjectService(projectRepo)
	taskService := service.NewTaskService(taskRepo, projectRepo)

	authHandler := handlers.NewAuthHandler(&authService)
	projectHandler := handlers.NewProjectHandler(&projectService)
	taskHandler := handlers.NewTaskHandler(&taskService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register) // POST /auth/register
		r.Post("/login", authHandler.Login)       // POST /auth/login
	})

	r.Route("/projects", func(r chi.Router) {
		r.Use(middleware.Auth(&authService))

		r.Get("/", projectHandler.GetProjects)  // GET /projects
		r.Post("/", projectHandler.PostProject) // POST /projects

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", projectHandler.GetProjectByID)       // GET /projects/{id}
			r.Put("/", projectHandler.UpdateProjectByID)    // PUT /projects/{id}
			r.Delete("/", projectHandler.DeleteProjectByID) // DELETE /projects/{id}

			r.Get("/progress", projectHandler.GetProgress) // GET /projects/{id}/progress

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.GetTasks)  // GET /projects/{id}/tasks
				r.Post("/", taskHandler.PostTask) // POST /projects/{id}/tasks

				r.Route("/{taskID}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTaskByID)       // GET /projects/{pid}/tasks/{id}
					r.Put("/", taskHandler.UpdateTaskByID)    // PUT /projects/{pid}/tasks/{id}
					r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /projects/{pid}/tasks/{id}

					r.Patch("/toggle", taskHandler.ToggleTask) // PATCH /projects/{pid}/tasks/{id}/toggle
				})
			})
		})
	})

	r.Get("/health", handlers.HealthCheck)

	logger.Info("Server started")
	http.ListenAndServe(cfg.GetServerAddr(), r)
}
