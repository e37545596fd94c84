package restapi

import (
	"net/http"

	"balance_formatter/internal/infrastructure/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterOptions carries the cross-cutting dependencies of the router.
type RouterOptions struct {
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer // nil disables /metrics
	AllowOrigins []string
}

// SetupRouter builds the gin engine with every route of the service.
func SetupRouter(h *Handler, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 || (len(opts.AllowOrigins) == 1 && opts.AllowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}

	router.Use(
		cors.New(corsConfig),
		RequestIDMiddleware(),
		ZapLoggerMiddleware(opts.Logger, opts.Metrics),
		gin.Recovery(),
	)

	router.GET("/healthz", h.Health)
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/wallets", h.ListWallets)
		v1.GET("/wallets/:address/balances", h.GetWalletBalances)
		v1.GET("/prices", h.ListPrices)
		v1.POST("/swap/quote", h.QuoteSwap)
	}

	return router
}
