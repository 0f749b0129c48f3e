package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"stayprice/cfg"
	"stayprice/internal/middleware"
	"stayprice/internal/offer"
	"stayprice/pkg/cache"
	"stayprice/pkg/desklineclient"
	"stayprice/pkg/idgen"
	"stayprice/pkg/logger"
	"stayprice/pkg/telemetry"

	_ "stayprice/cmd/stayprice/docs" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           Stay Price API
// @version         1.0
// @description     Adapter translating stay requests into Deskline search/price calls.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// telemetry
	// ============
	if config.Observability.Enabled {
		shutdownOtel, err := telemetry.Init(context.Background(), telemetry.Config{
			OTLPEndpoint: config.Observability.OTLPEndpoint,
			ServiceName:  config.Observability.ServiceName,
			Environment:  config.AppEnv,
		})
		if err != nil {
			zlogger.Warn("failed to initialize OpenTelemetry, continuing without tracing", logger.Err(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownOtel(ctx); err != nil {
					zlogger.Error("failed to shutdown OpenTelemetry", logger.Err(err))
				}
			}()
		}
	}

	// ============
	// cache
	// ============
	redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
	redis := cache.NewRedisCache(redisAddr, config.RedisConfig.Password)

	// ============
	// id generation
	// ============
	ids, err := idgen.New(1)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// external service
	// ============
	httpClient := &http.Client{
		Timeout: time.Duration(config.Deskline.TimeoutSeconds) * time.Second,
	}
	deskline := desklineclient.New(httpClient, desklineclient.Config{
		SearchBaseURL:   config.Deskline.SearchBaseURL,
		BaseURL:         config.Deskline.BaseURL,
		Destination:     config.Deskline.Destination,
		Prefix:          config.Deskline.Prefix,
		AccommodationID: config.Deskline.AccommodationID,
		Source:          config.Deskline.Source,
		Origin:          config.Deskline.Origin,
	}, zlogger)

	// ============
	// internal service
	// ============
	offerSvc := offer.NewService(deskline, redis, ids, offer.Options{
		StaticProductIDs:   config.Deskline.StaticProductIDs,
		FallbackProductIDs: config.Deskline.FallbackProductIDs,
		DefaultChildAge:    config.DefaultChildAge,
		CacheTTLMinutes:    config.OfferCacheTTLMinutes,
	}, zlogger)
	offerHandler := offer.NewOfferHandler(offerSvc)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(middleware.RequestLogger(ids, zlogger))

	offerHandler.RegisterRoutes(r)
	registerInfoRoute(r, config)
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	zlogger.Info("stayprice listening",
		logger.Field{Key: "addr", Value: addr},
		logger.Field{Key: "destination", Value: config.Deskline.Destination},
		logger.Field{Key: "accommodation_id", Value: config.Deskline.AccommodationID},
	)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func registerInfoRoute(r *gin.Engine, config *cfg.Config) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":              true,
			"routes":          []string{"POST /v1/offers", "POST /get-price"},
			"accommodationId": config.Deskline.AccommodationID,
			"destination":     config.Deskline.Destination,
		})
	})
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
