package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amoghdiagnostic/site-api/internal/api/handler"
	"github.com/amoghdiagnostic/site-api/internal/api/middleware"
	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// Services bundles the use-cases the router exposes.
type Services struct {
	Auth    ports.AuthService
	Users   ports.UserService
	Events  ports.EventService
	Product ports.ProductService
	Careers ports.CareerService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	svc Services,
	tokens ports.TokenIssuer,
	userRepo ports.UserRepository,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("site_api"))

	authRequired := middleware.Auth(tokens, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth & users ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)

	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/admin/register", authHandler.RegisterAdmin)
	e.POST("/admin/login", authHandler.LoginAdmin)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.POST("/verify-otp", authHandler.VerifyOTP)
	e.POST("/reset-password", authHandler.ResetPassword)

	e.GET("/me", userHandler.Me, authRequired)
	e.PUT("/update-profile", userHandler.UpdateProfile, authRequired)
	e.PUT("/upload-photo", userHandler.UploadPhoto, authRequired)

	e.GET("/users", userHandler.List, authRequired, adminOnly)
	e.GET("/users/:id", userHandler.Get, authRequired, adminOnly)
	e.PUT("/users/:id/toggle-status", userHandler.ToggleStatus, authRequired, adminOnly)
	e.DELETE("/users/:id", userHandler.Delete, authRequired, adminOnly)

	// --- Events ---
	eventHandler := handler.NewEventHandler(svc.Events)
	e.POST("/events", eventHandler.Create, authRequired, adminOnly)
	e.GET("/events", eventHandler.List)
	e.GET("/events/:id", eventHandler.Get)
	e.PUT("/events/:id", eventHandler.Update, authRequired, adminOnly)
	e.DELETE("/events/:id", eventHandler.Delete, authRequired, adminOnly)

	// --- Products ---
	productHandler := handler.NewProductHandler(svc.Product)
	e.POST("/products", productHandler.Create, authRequired, adminOnly)
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.PUT("/products/:id", productHandler.Update, authRequired, adminOnly)
	e.DELETE("/products/:id", productHandler.Delete, authRequired, adminOnly)

	// --- Careers ---
	careerHandler := handler.NewCareerHandler(svc.Careers)
	e.POST("/careers", careerHandler.Apply)
	e.GET("/careers", careerHandler.List, authRequired, adminOnly)
	e.GET("/careers/:id", careerHandler.Get, authRequired, adminOnly)
	e.DELETE("/careers/:id", careerHandler.Delete, authRequired, adminOnly)

	// --- Ops ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
