package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"conveydrive/internal/auth"
	"conveydrive/internal/config"
	"conveydrive/internal/handler"
	"conveydrive/internal/repository"
	"conveydrive/internal/service"
	"conveydrive/internal/service/s3"
)

func connectWithRetry(cfg *config.Config, maxAttempts int, delay time.Duration) (*sqlx.DB, error) {
	dsn := cfg.Database.GetDSN()

	// Сначала подключаемся к системной базе postgres
	pgDSN := strings.Replace(dsn, "dbname="+cfg.Database.Name, "dbname=postgres", 1)
	pgDB, err := sqlx.Connect("postgres", pgDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres database: %v", err)
	}
	defer pgDB.Close()

	// Проверяем, существует ли целевая база данных
	var exists bool
	err = pgDB.Get(&exists, "SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = $1)", cfg.Database.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check database existence: %v", err)
	}

	// Если базы нет, создаем её
	if !exists {
		log.Printf("Database %s does not exist, creating...", cfg.Database.Name)
		_, err = pgDB.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.Database.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	// Теперь пытаемся подключиться к целевой базе
	var db *sqlx.DB
	for i := 0; i < maxAttempts; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}

		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxAttempts, err)
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %v", maxAttempts, err)
}

func runMigrations(cfg *config.Config) error {
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	var m *migrate.Migrate
	var err error

	for i := 0; i < 5; i++ {
		m, err = migrate.New("file://migrations", databaseURL)
		if err == nil {
			break
		}
		log.Printf("Failed to create migrate instance (attempt %d/5): %v", i+1, err)
		time.Sleep(time.Second * 5)
	}

	if err != nil {
		return fmt.Errorf("failed to create migrate instance after retries: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Printf("Found dirty database state at version %d, attempting to force version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func main() {
	// Загружаем конфигурации
	appConfig, err := config.NewConfig(".app.env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectWithRetry(appConfig, 5, time.Second*5)
	if err != nil {
		log.Fatalf("Failed to connect to database after retries: %v", err)
	}
	defer db.Close()

	if err := runMigrations(appConfig); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Инициализация S3 клиента
	s3Config, err := s3.NewConfig(".s3.env")
	if err != nil {
		log.Fatalf("Failed to load S3 config: %v", err)
	}

	s3Client, err := s3.NewClient(s3Config)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}

	// Ключ проверки токенов аутентификации
	authConfig, err := auth.NewConfig(".auth.env")
	if err != nil {
		log.Fatalf("Failed to load auth config: %v", err)
	}
	auth.Init([]byte(authConfig.SigningKey))

	// Инициализация репозиториев
	matterRepo := repository.NewMatterRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	clientRepo := repository.NewClientRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	// Инициализация сервисов
	matterService := service.NewMatterService(matterRepo, auditRepo)
	documentService := service.NewDocumentService(documentRepo, matterRepo, s3Client)
	auditService := service.NewAuditService(auditRepo)
	clientService := service.NewClientService(clientRepo)
	propertyService := service.NewPropertyService(propertyRepo)
	todoService := service.NewTodoService(todoRepo, matterRepo)

	// Инициализация хендлеров
	matterHandler := handler.NewMatterHandler(matterService, auditService)
	documentHandler := handler.NewDocumentHandler(documentService)
	clientHandler := handler.NewClientHandler(clientService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	todoHandler := handler.NewTodoHandler(todoService)

	// Настройка HTTP роутера
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// HTTP маршруты
	r.Route("/v1", func(r chi.Router) {
		r.Route("/matters", func(r chi.Router) {
			r.Post("/", matterHandler.CreateMatter)
			r.Get("/", matterHandler.ListMatters)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Get("/", matterHandler.GetMatter)
				r.Put("/", matterHandler.UpdateMatter)
				r.Delete("/", matterHandler.DeleteMatter)
				r.Post("/archive", matterHandler.ArchiveMatter)
				r.Post("/unarchive", matterHandler.UnarchiveMatter)
				r.Get("/history", matterHandler.GetHistory)
				r.Post("/documents", documentHandler.UploadDocument)
				r.Get("/documents", documentHandler.ListDocuments)
				r.Get("/todos", todoHandler.ListTodos)
			})
		})

		r.Route("/documents/{uuid}", func(r chi.Router) {
			r.Get("/", documentHandler.DownloadDocument)
			r.Delete("/", documentHandler.DeleteDocument)
			r.Get("/versions", documentHandler.GetDocumentVersions)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", clientHandler.CreateClient)
			r.Get("/", clientHandler.ListClients)
			r.Get("/{uuid}", clientHandler.GetClient)
			r.Put("/{uuid}", clientHandler.UpdateClient)
			r.Delete("/{uuid}", clientHandler.DeleteClient)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Post("/", propertyHandler.CreateProperty)
			r.Get("/", propertyHandler.ListProperties)
			r.Get("/{uuid}", propertyHandler.GetProperty)
			r.Put("/{uuid}", propertyHandler.UpdateProperty)
			r.Delete("/{uuid}", propertyHandler.DeleteProperty)
		})

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", todoHandler.CreateTodo)
			r.Put("/{uuid}/complete", todoHandler.CompleteTodo)
			r.Delete("/{uuid}", todoHandler.DeleteTodo)
		})
	})

	// Создаем HTTP сервер
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}

	// Канал для сигналов завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем HTTP сервер
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Периодическая пометка просроченных задач
	overdueTicker := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			select {
			case <-overdueTicker.C:
				ctx := context.Background()
				marked, err := todoService.MarkOverdue(ctx)
				if err != nil {
					log.Printf("Error during overdue todo sweep: %v", err)
					continue
				}
				if marked > 0 {
					log.Printf("Marked %d todos as overdue", marked)
				}
			case <-quit:
				overdueTicker.Stop()
				return
			}
		}
	}()

	// Ожидаем сигнал завершения
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server forced to shutdown: %v", err)
	}

	if err := db.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}

	log.Println("Server exited properly")
}
