package main

import (
	"context"
	"net/http"
	"time"

	"github.com/arphatra/arphatra/config"
	"github.com/arphatra/arphatra/database"
	_ "github.com/arphatra/arphatra/docs" // Swagger docs - auto-generated
	"github.com/arphatra/arphatra/internal/controller"
	"github.com/arphatra/arphatra/internal/logger"
	"github.com/arphatra/arphatra/internal/metrics"
	"github.com/arphatra/arphatra/internal/middleware"
	"github.com/arphatra/arphatra/internal/model"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Arphatra Form Builder API
// @version 1.0
// @description Backend for the Arphatra drag-and-drop form builder: forms, responses, accounts, uploads.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewFormRepository,
			repository.NewResponseRepository,
			repository.NewUserRepository,
			repository.NewContactRepository,
		),

		fx.Provide(
			service.NewTokenService,
			service.NewMailService,
			service.NewGoogleVerifier,
			service.NewAuthService,
			service.NewFormService,
			service.NewResponseService,
			service.NewUserService,
			service.NewUploadService,
			service.NewContactService,
		),

		fx.Provide(
			controller.NewAuthController,
			controller.NewFormController,
			controller.NewUserController,
			controller.NewUploadController,
			controller.NewContactController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	metrics.Register(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	authCtrl *controller.AuthController,
	formCtrl *controller.FormController,
	userCtrl *controller.UserController,
	uploadCtrl *controller.UploadController,
	contactCtrl *controller.ContactController,
) {
	api := router.Group("/api/v1")

	// Public surface: account entry points, the renderer read path, the
	// submission write path, and the contact page.
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/google-login", authCtrl.GoogleLogin)
		auth.POST("/refresh-token", authCtrl.Refresh)
		auth.POST("/logout", authCtrl.Logout)
		auth.POST("/forgot-password", authCtrl.ForgotPassword)
		auth.POST("/reset-password", authCtrl.ResetPassword)
	}
	api.GET("/public/forms/:id", formCtrl.GetPublicForm)
	api.POST("/forms/:id/submit", formCtrl.SubmitResponse)
	api.POST("/contact", contactCtrl.Submit)

	// Everything below requires a bearer token.
	authed := api.Group("")
	authed.Use(middleware.Auth(tokens))
	{
		forms := authed.Group("/forms")
		forms.POST("", formCtrl.CreateForm)
		forms.GET("", formCtrl.ListForms)
		forms.GET("/check-slug", formCtrl.CheckSlug)
		forms.GET("/:id", formCtrl.GetForm)
		forms.PUT("/:id", formCtrl.UpdateForm)
		forms.DELETE("/:id", formCtrl.DeleteForm)
		forms.GET("/:id/responses", formCtrl.ListResponses)

		users := authed.Group("/users")
		users.GET("/profile", userCtrl.GetProfile)
		users.PUT("/profile", userCtrl.UpdateProfile)
		users.GET("/settings", userCtrl.GetSettings)
		users.PUT("/settings", userCtrl.UpdateSettings)
		users.POST("/deactivate", userCtrl.Deactivate)
		users.DELETE("/delete", userCtrl.DeleteAccount)

		authed.POST("/upload", uploadCtrl.Upload)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Arphatra API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Form{},
		&model.Response{},
		&model.ContactMessage{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
