package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "kinetica/docs"
	"kinetica/internal/api"
	"kinetica/internal/auth"
	"kinetica/internal/catalog"
	"kinetica/internal/config"
	"kinetica/internal/dashboard"
	"kinetica/internal/gym"
	"kinetica/internal/ledger"
	"kinetica/internal/logger"
	"kinetica/internal/member"
	"kinetica/internal/session"
	"kinetica/internal/user"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	User      *user.Handler
	Gym       *gym.Handler
	Member    *member.Handler
	Catalog   *catalog.Handler
	Ledger    *ledger.Handler
	Session   *session.Handler
	Dashboard *dashboard.Handler
	System    *SystemHandler
}

type Server struct {
	router  *gin.Engine
	http    *http.Server
	limiter *RateLimiter
}

func New(cfg *config.Config, h Handlers, tokens *auth.Tokens, checks ...auth.TokenCheck) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	api.UseJSONFieldNames()

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		corsMiddleware(cfg.CORSOrigins),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
	)

	router.GET("/health", h.System.Health)
	router.GET("/metrics", Metrics())
	if !cfg.IsProduction() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(limiter))
	{
		public.POST("/register", h.User.Register)
		public.POST("/login", h.User.Login)
		public.POST("/refresh", h.User.RefreshToken)
	}

	owner := auth.RequireOwner()
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(tokens, checks...))
	{
		protected.POST("/auth/logout", h.User.Logout)
		protected.GET("/auth/me", h.User.GetMe)

		protected.GET("/gym", h.Gym.GetGym)
		protected.PUT("/gym", owner, h.Gym.UpdateGym)

		protected.GET("/trainers", h.User.ListTrainers)
		protected.POST("/trainers", owner, h.User.CreateTrainer)
		protected.PUT("/trainers/:id", owner, h.User.UpdateTrainer)

		protected.GET("/members", h.Member.ListMembers)
		protected.POST("/members", h.Member.CreateMember)
		protected.GET("/members/:id", h.Member.GetMember)
		protected.PUT("/members/:id", h.Member.UpdateMember)
		protected.DELETE("/members/:id", h.Member.DeleteMember)
		protected.GET("/members/:id/sessions", h.Session.ListMemberSessions)
		protected.GET("/members/:id/packages", h.Ledger.ListMemberPackages)

		protected.GET("/packages", h.Catalog.ListPackages)
		protected.GET("/packages/:id", h.Catalog.GetPackage)
		protected.POST("/packages", owner, h.Catalog.CreatePackage)
		protected.PUT("/packages/:id", owner, h.Catalog.UpdatePackage)
		protected.DELETE("/packages/:id", owner, h.Catalog.DeletePackage)

		protected.GET("/payments", h.Ledger.ListPayments)
		protected.POST("/payments", h.Ledger.CreatePayment)
		protected.GET("/payments/:id", h.Ledger.GetPayment)
		protected.PUT("/payments/:id", h.Ledger.UpdatePayment)
		protected.PUT("/payments/:id/sessions-remaining", h.Ledger.OverrideSessionsRemaining)

		protected.GET("/sessions", h.Session.ListSessions)
		protected.POST("/sessions", h.Session.CreateSession)
		protected.GET("/sessions/:id", h.Session.GetSession)
		protected.PUT("/sessions/:id", h.Session.UpdateSession)
		protected.DELETE("/sessions/:id", h.Session.DeleteSession)

		protected.GET("/dashboard", h.Dashboard.GetStats)
		protected.GET("/dashboard/today", h.Dashboard.GetToday)
		protected.GET("/dashboard/expiring", h.Dashboard.GetExpiring)
	}

	return &Server{
		router:  router,
		limiter: limiter,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.http.Shutdown(ctx)
}
