package main

import (
	"context"

	"trails/internal/app"
	"trails/internal/config"
	"trails/internal/handler"
	"trails/internal/logging"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Точка входа для AWS Lambda за API Gateway. Соединения с хранилищем
// создаются при холодном старте и переиспользуются между вызовами.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "json").Fatalf("Ошибка конфигурации: %v", err)
	}
	log := logging.New(cfg.LogLevel, "json")
	gin.SetMode(cfg.GinMode)

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("Не удалось подключиться к хранилищу: %v", err)
	}
	defer a.Close()

	lambda.Start(newProxy(a, log))
}

type proxyFunc func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// newProxy передает события API Gateway в тот же gin-роутер, что и HTTP-сервер.
func newProxy(a *app.App, log logrus.FieldLogger) proxyFunc {
	h := handler.NewHandler(a.TrailService, a.LocationService, log)
	router := handler.NewRouter(h, log, gatewayRequestID)
	return ginadapter.New(router).ProxyWithContext
}

// gatewayRequestID берет идентификатор запроса API Gateway, если клиент не прислал свой.
func gatewayRequestID(c *gin.Context) {
	rc, ok := core.GetAPIGatewayContextFromContext(c.Request.Context())
	if ok && rc.RequestID != "" && c.GetHeader("X-Request-ID") == "" {
		c.Request.Header.Set("X-Request-ID", rc.RequestID)
	}
	c.Next()
}
