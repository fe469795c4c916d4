package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/auth"
	"github.com/ipqbbqgyy/parking-system/internal/billing"
	"github.com/ipqbbqgyy/parking-system/internal/config"
	"github.com/ipqbbqgyy/parking-system/internal/lot"
	"github.com/ipqbbqgyy/parking-system/internal/membership"
	"github.com/ipqbbqgyy/parking-system/internal/notify"
	"github.com/ipqbbqgyy/parking-system/internal/plate"
	"github.com/ipqbbqgyy/parking-system/internal/promotion"
	"github.com/ipqbbqgyy/parking-system/internal/stay"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router       *gin.Engine
	httpServer   *http.Server
	feed         *lot.Feed
	availability *lot.Availability
	sweeper      *stay.Sweeper
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) (*Server, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	catalog, err := lot.ParseZones(cfg.SpotZones)
	if err != nil {
		return nil, err
	}

	engine, err := billing.NewEngine(billing.Config{
		HourlyRate:          cfg.HourlyRate,
		FreeDurationMinutes: cfg.FreeDurationMinutes,
	})
	if err != nil {
		return nil, err
	}

	promotionService := promotion.NewService(promotion.NewRepository(db))
	membershipService := membership.NewService(membership.NewRepository(db))
	feed := lot.NewFeed()

	opts := []stay.Option{stay.WithObserver(feed)}
	if notifier != nil {
		opts = append(opts, stay.WithNotifier(notifier))
	}
	stayService := stay.NewService(
		stay.NewRepository(db),
		engine,
		promotionService,
		membershipService,
		stay.Config{ReservationWindow: cfg.ReservationWindow},
		opts...,
	)
	availability := lot.NewAvailability(catalog, stayService, promotionService)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware(), MetricsMiddleware(), corsMiddleware())

	stayHandler := stay.NewHandler(stayService, catalog)
	promotionHandler := promotion.NewHandler(promotionService)
	membershipHandler := membership.NewHandler(membershipService)
	lotHandler := lot.NewHandler(availability, feed)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	public := router.Group("/")
	public.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		public.POST("/plates/validate", stayHandler.ValidatePlate)
		public.GET("/lot/spots", lotHandler.Spots)
		public.GET("/lot/ws", lotHandler.Live)
		public.GET("/promotions/current", promotionHandler.CurrentPromotion)
		public.GET("/memberships/plans", membershipHandler.ListPlans)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/stays/entry", stayHandler.Enter)
		protected.POST("/stays/reservations", stayHandler.Reserve)
		protected.POST("/stays/reservations/:stayID/activate", stayHandler.Activate)
		protected.DELETE("/stays/reservations/:stayID", stayHandler.Cancel)
		protected.GET("/stays/:stayID/quote", stayHandler.Quote)
		protected.POST("/stays/:stayID/pay", stayHandler.Pay)
		protected.GET("/stays", stayHandler.ListMine)
		protected.GET("/memberships/me", membershipHandler.Mine)
		protected.POST("/memberships", membershipHandler.Purchase)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/promotions", promotionHandler.CreatePromotion)
		admin.GET("/promotions", promotionHandler.ListPromotions)
		admin.POST("/promotions/:promotionID/deactivate", promotionHandler.DeactivatePromotion)
		admin.POST("/reservations/sweep", stayHandler.Sweep)
		admin.GET("/stays/open", stayHandler.ListOpen)
		if notifier != nil {
			admin.GET("/notifications/queue", NotificationQueue(notifier))
		}
	}

	return &Server{
		router:       router,
		feed:         feed,
		availability: availability,
		sweeper:      stay.NewSweeper(stayService, cfg.SweepInterval),
	}, nil
}

// RegisterValidators adds the custom binding tags used by request bodies.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}
	return v.RegisterValidation(plate.Tag, plate.ValidateField)
}

// RunBackground starts the availability feed and the reservation sweeper.
// Both stop when ctx is cancelled.
func (s *Server) RunBackground(ctx context.Context) {
	go s.feed.Run(ctx, s.availability)
	go s.sweeper.Start(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
