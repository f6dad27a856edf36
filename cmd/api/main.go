package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trails/internal/app"
	"trails/internal/config"
	"trails/internal/handler"
	"trails/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Конфигурация читается один раз и передается дальше явно
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").Fatalf("Ошибка конфигурации: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Не удалось подключиться к хранилищу: %v", err)
	}
	defer a.Close()

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(a.TrailService, a.LocationService, log)
	router := handler.NewRouter(h, log)

	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Сервис троп слушает порт %s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Ошибка при остановке сервера: %v", err)
	}
}
