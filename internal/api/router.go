package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hiptrack/shipment-tracker/docs"
	"github.com/hiptrack/shipment-tracker/internal/api/handler"
	"github.com/hiptrack/shipment-tracker/internal/api/middleware"
	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

// Dependencies bundles everything the router needs wired in.
type Dependencies struct {
	Tracking  ports.TrackingService
	Shipments ports.ShipmentService
	Messages  ports.MessageService
	Feedback  ports.FeedbackService
	Auth      ports.AuthService

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hiptrack"))

	// --- Handlers ---
	trackingHandler := handler.NewTrackingHandler(deps.Tracking)
	shipmentHandler := handler.NewShipmentHandler(deps.Shipments)
	messageHandler := handler.NewMessageHandler(deps.Messages)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)
	authHandler := handler.NewAuthHandler(deps.Auth)

	staffOnly := []echo.MiddlewareFunc{
		middleware.Auth(deps.JWTSecret),
		middleware.RBAC(domain.RoleAdmin, domain.RoleStaff),
	}

	// --- Public tracking surface ---
	e.GET("/tracking/:code", trackingHandler.Get)
	e.GET("/history/:code", shipmentHandler.History)
	e.POST("/shipments/simulate-movement", trackingHandler.SimulateMovement)
	e.POST("/feedbacks", feedbackHandler.Submit)

	// --- Support chat (customer side is anonymous) ---
	e.POST("/messages", messageHandler.Send, middleware.AuthOptional(deps.JWTSecret))
	e.GET("/messages/:conversation", messageHandler.ListConversation)
	e.POST("/messages/:conversation/read", messageHandler.MarkRead, staffOnly...)
	e.GET("/conversations", messageHandler.ListConversations, staffOnly...)

	// --- Staff administration ---
	e.PATCH("/tracking/:code", trackingHandler.Patch, staffOnly...)
	e.POST("/shipments", shipmentHandler.Create, staffOnly...)
	e.GET("/shipments", shipmentHandler.List, staffOnly...)
	e.PATCH("/shipments/:code", shipmentHandler.Patch, staffOnly...)
	e.POST("/shipments/update-location", shipmentHandler.UpdateLocation, staffOnly...)
	e.GET("/feedbacks", feedbackHandler.List, staffOnly...)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes, metrics, docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
