package server

import (
	"context"
	"net/http"
	"time"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/auth"
	"fitnessmanager/internal/config"
	"fitnessmanager/internal/course"
	"fitnessmanager/internal/customer"
	"fitnessmanager/internal/gym"
	"fitnessmanager/internal/message"
	"fitnessmanager/internal/payment"
	"fitnessmanager/internal/reservation"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router    *gin.Engine
	http      *http.Server
	stopSweep context.CancelFunc
}

type handlers struct {
	customer    *customer.Handler
	gym         *gym.Handler
	course      *course.Handler
	reservation *reservation.Handler
	message     *message.Handler
	payment     *payment.Handler
}

// New wires repositories, services and handlers onto a gin router. rdb may
// be nil, in which case rate limiting stays in-process.
func New(db *sqlx.DB, cfg *config.Config, tokens *auth.Issuer, rdb redis.Cmdable) *Server {
	gin.SetMode(cfg.GinMode)

	customerRepo := customer.NewRepository(db)
	accessRepo := access.NewRepository(db)
	gymRepo := gym.NewRepository(db)
	courseRepo := course.NewRepository(db)
	scope := access.NewScope(accessRepo)

	h := handlers{
		customer:    customer.NewHandler(customer.NewService(customerRepo, tokens)),
		gym:         gym.NewHandler(gym.NewService(gymRepo, scope, customerRepo)),
		course:      course.NewHandler(course.NewService(courseRepo, scope, gymRepo, customerRepo)),
		reservation: reservation.NewHandler(reservation.NewService(reservation.NewRepository(db), scope, courseRepo, customerRepo)),
		message:     message.NewHandler(message.NewService(message.NewRepository(db), customerRepo)),
		payment:     payment.NewHandler(payment.NewService(payment.NewRepository(db), customerRepo)),
	}

	limiter, backend := newLimiter(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	if mem, ok := limiter.(*MemoryRateLimiter); ok {
		go mem.Run(sweepCtx)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		corsMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		RateLimitMiddleware(limiter, backend),
	)

	router.GET("/health", Health(db))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	registerRoutes(router, h, auth.Middleware(tokens), access.Middleware(accessRepo))

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{router: router, http: httpServer, stopSweep: stopSweep}
}

func registerRoutes(router *gin.Engine, h handlers, authMiddleware, callerMiddleware gin.HandlerFunc) {
	staffOnly := auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)

	public := router.Group("/auth")
	{
		public.POST("/register", h.customer.Register)
		public.POST("/login", h.customer.Login)
		public.POST("/refresh", h.customer.Refresh)
	}

	protected := router.Group("/")
	protected.Use(authMiddleware, callerMiddleware)
	{
		protected.GET("/me", h.customer.GetMe)
		protected.GET("/customer-data", staffOnly, h.customer.CustomerData)
		protected.GET("/customer-data/fields", staffOnly, h.customer.CustomerFields)

		protected.GET("/gyms", h.gym.ListGyms)
		protected.GET("/gyms/:id", h.gym.GetGym)
		protected.GET("/gyms/:id/memberships", staffOnly, h.gym.ListGymMemberships)
		protected.GET("/memberships", h.gym.ListMyMemberships)

		protected.POST("/rooms", h.gym.CreateRoom)
		protected.GET("/rooms", h.gym.ListRooms)
		protected.GET("/rooms/:id", h.gym.GetRoom)
		protected.PUT("/rooms/:id", h.gym.UpdateRoom)
		protected.DELETE("/rooms/:id", h.gym.DeleteRoom)

		protected.POST("/courses", h.course.CreateCourse)
		protected.GET("/courses", h.course.ListCourses)
		protected.GET("/courses/:id", h.course.GetCourse)
		protected.PUT("/courses/:id", h.course.UpdateCourse)
		protected.DELETE("/courses/:id", h.course.DeleteCourse)
		protected.GET("/courses/:id/schedules", h.course.ListSchedules)

		protected.POST("/schedules", staffOnly, h.course.CreateSchedule)
		protected.GET("/schedules/:id", h.course.GetSchedule)
		protected.DELETE("/schedules/:id", staffOnly, h.course.DeleteSchedule)
		protected.GET("/schedules/:id/occurrences", h.course.Occurrences)
		protected.POST("/schedules/:id/instances", staffOnly, h.course.MaterializeInstance)
		protected.GET("/schedules/:id/instances", h.course.ListInstances)
		protected.GET("/schedules/:id/reservations", h.reservation.ListForSchedule)

		protected.POST("/reservations", h.reservation.Reserve)
		protected.GET("/reservations", h.reservation.ListMine)
		protected.GET("/reservations/:id", h.reservation.Get)
		protected.DELETE("/reservations/:id", h.reservation.Cancel)

		protected.POST("/messages", h.message.Create)
		protected.GET("/messages/inbox", h.message.Inbox)
		protected.GET("/messages/sent", h.message.Sent)
		protected.GET("/messages/unread-count", h.message.UnreadCount)
		protected.GET("/messages/:id", h.message.Get)
		protected.PATCH("/messages/:id", h.message.Update)
		protected.DELETE("/messages/:id", h.message.Delete)
		protected.POST("/messages/:id/send", h.message.Send)

		protected.GET("/payments", h.payment.ListMine)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, callerMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/gyms", h.gym.CreateGym)
		admin.GET("/gyms", h.gym.ListAllGyms)
		admin.PUT("/gyms/:id", h.gym.UpdateGym)
		admin.DELETE("/gyms/:id", h.gym.DeleteGym)
		admin.POST("/memberships", h.gym.CreateMembership)
		admin.POST("/payments", h.payment.Create)
		admin.GET("/customers/:customerID/payments", h.payment.ListByCustomer)
		admin.POST("/customers/:customerID/groups", h.customer.AddToGroup)
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopSweep()
	return s.http.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
