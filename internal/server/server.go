package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pantryworks/pantry/internal/config"
	itemdomain "github.com/pantryworks/pantry/internal/item/domain"
	locationdomain "github.com/pantryworks/pantry/internal/location/domain"
	"github.com/pantryworks/pantry/internal/observability"
	obslogger "github.com/pantryworks/pantry/internal/observability/logger"
	obsmetrics "github.com/pantryworks/pantry/internal/observability/metrics"
	obstracing "github.com/pantryworks/pantry/internal/observability/tracing"
	"github.com/pantryworks/pantry/internal/providers/openfoodfacts"
	productdomain "github.com/pantryworks/pantry/internal/product/domain"
	tagdomain "github.com/pantryworks/pantry/internal/tag/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	locationSvc locationdomain.Service
	tagSvc      tagdomain.Service
	productSvc  productdomain.Service
	itemSvc     itemdomain.Service
	lookup      openfoodfacts.Lookup
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	LocationSvc locationdomain.Service
	TagSvc      tagdomain.Service
	ProductSvc  productdomain.Service
	ItemSvc     itemdomain.Service
	Lookup      openfoodfacts.Lookup
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http.server"),
		locationSvc: p.LocationSvc,
		tagSvc:      p.TagSvc,
		productSvc:  p.ProductSvc,
		itemSvc:     p.ItemSvc,
		lookup:      p.Lookup,
	}

	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/locations", s.ListLocations)

	s.engine.GET("/tags", s.ListTags)
	s.engine.POST("/tag", s.CreateTag)

	s.engine.GET("/products", s.ListProducts)
	s.engine.GET("/products/:id", s.GetProductByID)
	s.engine.POST("/product", s.CreateProduct)
	s.engine.PUT("/product/:id", s.UpdateProduct)

	s.engine.GET("/items/:locationId", s.ListItemsByLocation)
	s.engine.POST("/item", s.CreateItem)

	s.engine.GET("/openfoodfacts/:ean13", s.LookupBarcode)
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: s.Engine(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
