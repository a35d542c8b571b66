package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emilythestrangee/investor-hub/backend/internal/cache"
	"github.com/emilythestrangee/investor-hub/backend/internal/config"
	"github.com/emilythestrangee/investor-hub/backend/internal/database"
	"github.com/emilythestrangee/investor-hub/backend/internal/handlers"
	"github.com/emilythestrangee/investor-hub/backend/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	auth    *middleware.Authenticator
	handler *handlers.Handler
	logger  *slog.Logger
}

// New wires handlers over the given database and count cache.
func New(cfg *config.Config, db database.Service, counts *cache.VoteCounts, logger *slog.Logger) *Server {
	auth := middleware.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL)
	return &Server{
		cfg:     cfg,
		auth:    auth,
		handler: handlers.NewHandler(db, counts, auth),
		logger:  logger,
	}
}

// HTTPServer returns the configured http.Server for the API.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.cfg.RequestTimeout + 5*time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.RequestLogger(s.logger),
	)

	r.Use(cors.New(s.corsConfig()))

	r.GET("/health", s.handler.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.Timeout(s.cfg.RequestTimeout))
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads; a valid token is picked up when present
		public := api.Group("")
		public.Use(s.auth.Optional())
		{
			public.GET("/posts", s.handler.Post.GetPosts)
			public.GET("/posts/:id", s.handler.Post.GetPost)
			public.GET("/posts/:id/comments", s.handler.Comment.GetComments)
			public.GET("/comments/:id", s.handler.Comment.GetComment)
			public.GET("/votes/:targetType/:targetId/count", s.handler.Vote.GetVoteCount)
			public.GET("/users/:id", s.handler.User.GetUserProfile)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(s.auth.Required())
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/:id", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:id", s.handler.Post.DeletePost)

			protected.POST("/comments", s.handler.Comment.CreateComment)
			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.PUT("/comments/:id", s.handler.Comment.UpdateComment)
			protected.DELETE("/comments/:id", s.handler.Comment.DeleteComment)

			protected.POST("/votes/:targetType/:targetId", s.handler.Vote.ToggleVote)
			protected.GET("/votes/mine", s.handler.Vote.GetMyVotes)

			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)
		}
	}

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// No configured origin means any origin, without credentials.
	if origins := s.cfg.Origins(); len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
