package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/campusworks/project-portal/docs"
	"github.com/campusworks/project-portal/internal/api/handler"
	"github.com/campusworks/project-portal/internal/api/middleware"
	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
	"github.com/campusworks/project-portal/internal/core/service"
	"github.com/campusworks/project-portal/internal/infrastructure/config"
	mongodb "github.com/campusworks/project-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/campusworks/project-portal/internal/infrastructure/db/redis"
	healthhandlers "github.com/campusworks/project-portal/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; logout then degrades to cookie-clear only.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	announcementRepo := mongodb.NewAnnouncementRepository(db)

	var sessions ports.SessionStore = noopSessionStore{}
	if rdb != nil {
		sessions = redisdb.NewSessionStore(rdb)
	}

	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codec, sessions, log)
	projectService := service.NewProjectService(projectRepo, userRepo, log)
	userService := service.NewUserService(userRepo, log)
	announcementService := service.NewAnnouncementService(announcementRepo, log)

	cookies := handler.CookieSettings{Secure: cfg.IsProduction()}
	authHandler := handler.NewAuthHandler(authService, cookies)
	projectHandler := handler.NewProjectHandler(projectService)
	userHandler := handler.NewUserHandler(userService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)

	session := middleware.Session(codec, userRepo, sessions, log)
	facultyOnly := middleware.RequireRole(domain.RoleFaculty)

	// --- API routes ---
	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, session)
	auth.POST("/change-password", authHandler.ChangePassword, session)

	users := api.Group("/users", session)
	users.GET("/search", userHandler.SearchStudents)
	users.PUT("/me", userHandler.UpdateProfile)

	// Specific project routes are registered before the parameterised ones
	// so /final and /all are not swallowed by /:id.
	projects := api.Group("/projects", session)
	projects.POST("", projectHandler.Submit)
	projects.GET("", projectHandler.ListMine)
	projects.GET("/all", projectHandler.ListAll, facultyOnly)
	projects.GET("/final-marks", projectHandler.ListFinalMarks)
	projects.PUT("/final", projectHandler.SubmitFinal)
	projects.PUT("/approve/:id", projectHandler.Approve, facultyOnly)
	projects.PUT("/feedback/:id", projectHandler.AddFeedback, facultyOnly)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.PUT("/:id/features/:index", projectHandler.ToggleFeature)

	announcements := api.Group("/announcements", session)
	announcements.GET("", announcementHandler.List)
	announcements.POST("", announcementHandler.Create, facultyOnly)
	announcements.DELETE("/:id", announcementHandler.Delete, facultyOnly)

	// --- Ops surface (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// noopSessionStore keeps logout working when Redis is unavailable:
// nothing is ever recorded as revoked.
type noopSessionStore struct{}

func (noopSessionStore) Revoke(context.Context, string, time.Time) error { return nil }

func (noopSessionStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
