package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP front end: request logging, panic recovery,
// request validation against doc, the API routes, the swagger UI and a
// health probe.
func NewEcho(s *Server, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	validate, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterRoutes(e.Group("/api/v1", validate), s)
	return e, nil
}

// RegisterRoutes mounts every API operation on g.
func RegisterRoutes(g *echo.Group, s *Server) {
	g.GET("/clients", s.ListClients)
	g.POST("/clients", s.CreateClient)
	g.DELETE("/clients/:clientId", s.DeleteClient)

	g.GET("/products", s.ListProducts)
	g.POST("/products", s.CreateProduct)
	g.PUT("/products/:productId", s.UpdateProduct)
	g.DELETE("/products/:productId", s.DeleteProduct)

	g.GET("/orders", s.GetBoard)
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.DELETE("/orders/:orderId", s.DeleteOrder)
	g.PUT("/orders/:orderId/status", s.SetOrderStatus)
	g.POST("/orders/:orderId/clone", s.CloneOrder)

	g.POST("/orders/:orderId/items", s.AddOrderItem)
	g.DELETE("/orders/:orderId/items/:itemId", s.RemoveOrderItem)
	g.POST("/orders/:orderId/items/:itemId/advance", s.AdvanceItemStep)
	g.PUT("/orders/:orderId/items/:itemId/status", s.SetItemStatus)
	g.PUT("/orders/:orderId/items/:itemId/step", s.GoToItemStep)

	g.GET("/items", s.ListOrderItems)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "HTTP")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
