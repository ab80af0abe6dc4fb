package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"crm/internal/logger"
	"crm/internal/service"
)

// Options параметры транспортного слоя
type Options struct {
	ServiceName string
	CORSOrigins []string
}

type Server struct {
	engine  *gin.Engine
	svc     *service.Services
	schema  *graphql.Schema
	log     *logger.Logger
	started time.Time
}

func NewServer(svc *service.Services, schema *graphql.Schema, log *logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "crm"
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(opts.ServiceName))
	r.Use(AttachRequestID())
	r.Use(RequestLogger(log))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Request-Id"},
			ExposeHeaders:    []string{headerRequestID},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	s := &Server{engine: r, svc: svc, schema: schema, log: log, started: time.Now()}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", s.healthz)
	s.engine.POST("/graphql", s.graphql)

	v1 := s.engine.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		customers.POST("", s.createCustomer)
		customers.POST("/bulk", s.bulkCreateCustomers)
		customers.GET("", s.listCustomers)
		customers.GET(":id", s.getCustomer)

		products := v1.Group("/products")
		products.POST("", s.createProduct)
		products.POST("/restock", s.restockProducts)
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)

		orders := v1.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)

		v1.GET("/reports/totals", s.totals)
	}
}

// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}
