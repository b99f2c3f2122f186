package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bet_tracker/internal/account"
	"bet_tracker/internal/ledger"
)

type Deps struct {
	DB              *gorm.DB
	Accounts        *account.Service
	Store           ledger.Store
	Log             *zap.Logger
	DefaultCurrency string
}

func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(log))

	(&HealthHandler{DB: d.DB}).Register(engine)
	(&AccountHandler{Accounts: d.Accounts, Log: log}).Register(engine)
	(&WagerHandler{
		Accounts:        d.Accounts,
		Store:           d.Store,
		Log:             log,
		DefaultCurrency: d.DefaultCurrency,
	}).Register(engine)
	return engine
}

// RequestLogger logs one line per request, tagged with the caller's
// X-Request-Id or a fresh one.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-Id", requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("http request", fields...)
		case status >= 400:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}
