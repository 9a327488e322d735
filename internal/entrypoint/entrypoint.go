package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/catalog"
	"github.com/mrlokans/readingtracker/internal/config"
	"github.com/mrlokans/readingtracker/internal/content"
	"github.com/mrlokans/readingtracker/internal/database"
	"github.com/mrlokans/readingtracker/internal/database/highlights"
	"github.com/mrlokans/readingtracker/internal/database/insights"
	progressrepo "github.com/mrlokans/readingtracker/internal/database/progress"
	"github.com/mrlokans/readingtracker/internal/database/segments"
	"github.com/mrlokans/readingtracker/internal/database/words"
	http_controllers "github.com/mrlokans/readingtracker/internal/http"
	"github.com/mrlokans/readingtracker/internal/importer"
	"github.com/mrlokans/readingtracker/internal/logger"
	"github.com/mrlokans/readingtracker/internal/progress"
	"github.com/mrlokans/readingtracker/internal/scheduler"
	"github.com/mrlokans/readingtracker/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired router and everything that must be released on exit.
type App struct {
	Router *gin.Engine

	db         *database.Database
	taskClient *tasks.Client
	importer   *scheduler.ImportScheduler
	cancel     context.CancelFunc
	log        *logger.Logger
}

// NewApp opens the database, builds every service and starts the background
// workers when tasks are enabled.
func NewApp(cfg *config.Config, version string, log *logger.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info("Database initialized", "path", cfg.Database.Path)

	app := &App{db: db, log: log}
	books := catalog.Default()

	segmentsRepo := segments.NewRepository(db.DB)
	annotationsService := annotations.NewService(
		words.NewRepository(db.DB),
		highlights.NewRepository(db.DB),
		insights.NewRepository(db.DB),
	)

	routerCfg := http_controllers.RouterConfig{
		Catalog:    books,
		Content:    content.NewService(segmentsRepo),
		Progress:   progress.NewTracker(progressrepo.NewRepository(db.DB)),
		Words:      annotationsService,
		Highlights: annotationsService,
		Insights:   annotationsService,
		Database:   db,
		BasePath:   cfg.API.BasePath,
		DemoUserID: cfg.API.DemoUserID,
		Logger:     log,
		Version:    version,
	}

	if cfg.Tasks.Enabled {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.taskClient = taskClient

		taskClient.Register(tasks.NewImportBookQueue(importer.New(segmentsRepo, log), log))

		var taskCtx context.Context
		taskCtx, app.cancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)

		importQueue := tasks.NewImportQueue(taskClient, books, cfg.Import.TextsDir, cfg.Import.TotalSegments)
		routerCfg.Tasks = importQueue

		if cfg.Import.OnStart {
			ids, err := importQueue.EnqueueImport("")
			if err != nil {
				log.Warn("Failed to enqueue startup import", "error", err)
			} else {
				log.Info("Startup import enqueued", "tasks", len(ids))
			}
		}

		if cfg.Import.Schedule != "" {
			app.importer = scheduler.NewImportScheduler(cfg.Import.Schedule, func() ([]string, error) {
				return importQueue.EnqueueImport("")
			}, log)
			if err := app.importer.Start(taskCtx); err != nil {
				app.Close()
				return nil, fmt.Errorf("failed to start import scheduler: %w", err)
			}
		}
	} else {
		log.Info("Task queue disabled; use the import command to load book texts")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Shutdown stops the scheduler and waits for running tasks.
func (a *App) Shutdown(ctx context.Context) {
	if a.importer != nil {
		a.importer.Stop()
	}
	if a.taskClient != nil {
		a.taskClient.Stop(ctx)
	}
	if a.cancel != nil {
		a.cancel()
	}
}

// Close releases the task queue and the database.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.taskClient != nil {
		if err := a.taskClient.Close(); err != nil {
			a.log.Error("Error closing task client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Error closing database", "error", err)
		}
	}
}

func Serve(router *gin.Engine, cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting server", "addr", srv.Addr, "base_path", cfg.API.BasePath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", "error", err)
		}
	}()

	// SIGKILL cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown", "error", err)
	}

	log.Info("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting reading tracker", "version", version)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := NewApp(cfg, version, log)
	if err != nil {
		log.Fatal("Failed to start", "error", err)
	}
	defer app.Close()

	Serve(app.Router, cfg, log, app.Shutdown)
}
