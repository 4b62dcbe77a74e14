package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/healthbridge/records-api/internal/handler"
	appointmenth "github.com/healthbridge/records-api/internal/handler/appointment"
	authh "github.com/healthbridge/records-api/internal/handler/auth"
	conversationh "github.com/healthbridge/records-api/internal/handler/conversation"
	doctorh "github.com/healthbridge/records-api/internal/handler/doctor"
	emrh "github.com/healthbridge/records-api/internal/handler/emr"
	metrich "github.com/healthbridge/records-api/internal/handler/metric"
	patienth "github.com/healthbridge/records-api/internal/handler/patient"
	prescriptionh "github.com/healthbridge/records-api/internal/handler/prescription"
	profileh "github.com/healthbridge/records-api/internal/handler/profile"
	"github.com/healthbridge/records-api/internal/middleware"
)

type Handlers struct {
	Auth         *authh.Handler
	Profile      *profileh.Handler
	Patient      *patienth.Handler
	Doctor       *doctorh.Handler
	EMR          *emrh.Handler
	Prescription *prescriptionh.Handler
	Appointment  *appointmenth.Handler
	Metric       *metrich.Handler
	Conversation *conversationh.Handler
	Ops          *handler.Handler
}

type Config struct {
	RateLimit      rate.Limit
	RateBurst      int
	CORSConfig     middleware.CORSConfig
	DirectoryCache time.Duration
}

// New assembles the gin engine: global middleware, public auth routes, the
// protected /api/v1 surface and the operational endpoints.
func New(auth *middleware.AuthMiddleware, h Handlers, config Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()

	engine := gin.New()

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	metrics := middleware.NewHTTPMetrics()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(config.CORSConfig),
		limiter.RateLimit(),
		metrics.Middleware(),
	)

	engine.GET("/health/live", h.Ops.LivenessCheck)
	engine.GET("/health/ready", h.Ops.ReadinessCheck)
	engine.GET("/metrics", h.Ops.MetricsHandler)

	v1 := engine.Group("/api/v1")
	h.Auth.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(auth.Authenticate())

	h.Auth.RegisterProtectedRoutes(protected)
	h.Profile.RegisterRoutes(protected)
	h.Patient.RegisterRoutes(protected)
	h.EMR.RegisterRoutes(protected)
	h.Prescription.RegisterRoutes(protected)
	h.Appointment.RegisterRoutes(protected)
	h.Metric.RegisterRoutes(protected)
	h.Conversation.RegisterRoutes(protected)

	directoryCache := middleware.NewResponseCache(config.DirectoryCache)
	h.Doctor.RegisterRoutes(protected, directoryCache.Cache())

	return engine
}
