package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"modern-stitch/app/controller"
	"modern-stitch/app/middleware"
	"modern-stitch/app/router"
	"modern-stitch/config"
	"modern-stitch/content"
	"modern-stitch/db"
	"modern-stitch/repository"
	"modern-stitch/service"
)

// App is the wired application
type App struct {
	Handler  http.Handler
	Sessions *service.SessionStore
	closers  []func() error
}

// Dependencies lets tests swap the external collaborators. Nil fields are built from config.
type Dependencies struct {
	CatalogRepository repository.CatalogRepositoryInterface
	Generator         service.ContentGenerator
	Images            service.ImageSource
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	return InitializeWith(ctx, cfg, logger, Dependencies{})
}

// InitializeWith initializes the application with the given collaborators
func InitializeWith(ctx context.Context, cfg config.Config, logger *zap.Logger, deps Dependencies) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{}

	repo := deps.CatalogRepository
	if repo == nil {
		switch cfg.Catalog.Source {
		case config.CatalogSourcePostgres:
			if err := db.InitDB(ctx, cfg.Catalog.DatabaseURL); err != nil {
				return nil, fmt.Errorf("failed to initialize database: %w", err)
			}
			a.closers = append(a.closers, db.CloseDB)
			repo = repository.NewCatalogRepository(db.DB, logger)
		default:
			repo = repository.NewStaticCatalogRepository()
		}
	}

	catalog, err := service.NewCatalogService(ctx, repo, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	generator := deps.Generator
	if generator == nil {
		generator, err = service.NewContentGenerator(ctx, cfg.AI.APIKey, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	images := deps.Images
	if images == nil {
		var drive service.DriveServiceInterface
		if cfg.Images.DriveCredentialsJSON != "" || cfg.Images.DriveCredentialsFile != "" {
			driveService, err := service.NewDriveService(ctx, cfg.Images.DriveCredentialsFile, cfg.Images.DriveCredentialsJSON, logger)
			if err != nil {
				a.Close()
				return nil, err
			}
			drive = driveService
		}
		optimizer := service.NewImageOptimizer(cfg.Images.MaxDimension, cfg.Images.Quality, logger)
		images = service.NewImageFetcher(cfg.Images.FetchTimeout, drive, optimizer, logger)
	}

	stylist, err := service.NewStylistService(generator, catalog, service.StylistOptions{
		Model:       cfg.AI.AdviceModel,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	}, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	scenes, err := service.NewSceneService(generator, images, cfg.AI.SceneModel, cfg.AI.Timeout, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	front, err := service.NewStorefront(catalog, stylist, scenes, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	lookbook, err := service.NewLookbookService(catalog, cfg.Lookbook.ChromePath, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	pages, err := content.NewStore()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Sessions = service.NewSessionStore(cfg.Session.TTL, front.NewSession, logger)

	controllers := &router.Controllers{
		Catalog:    controller.NewCatalogController(catalog, lookbook, logger),
		Cart:       controller.NewCartController(front, logger),
		Wardrobe:   controller.NewWardrobeController(front, logger),
		Navigation: controller.NewNavigationController(front, logger),
		Stylist:    controller.NewStylistController(front, logger),
		Scene:      controller.NewSceneController(front, logger),
		Page:       controller.NewPageController(pages, logger),
	}

	a.Handler = router.SetupRoutes(controllers, router.Options{
		Logger:   logger,
		Sessions: a.Sessions,
		Session: middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.IsProduction(),
		},
	})
	return a, nil
}

// Close releases resources opened by Initialize
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}
