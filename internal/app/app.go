package app

import (
	"context"

	"trails/internal/config"
	"trails/internal/db"
	"trails/internal/repository"
	"trails/internal/repository/dynamo"
	"trails/internal/service"

	"github.com/sirupsen/logrus"
)

// App связывает хранилище, выбранное в конфигурации, с сервисами троп и локаций.
type App struct {
	TrailService    *service.TrailService
	LocationService *service.LocationService
	close           func() error
}

// New открывает хранилище и собирает сервис. Вызывающий отвечает за Close.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	if cfg.Driver == config.DriverDynamoDB {
		client, err := dynamo.NewClient(ctx, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		store := dynamo.New(client, dynamo.Tables{Trails: cfg.TrailsTable, Locations: cfg.LocationsTable})
		locations := dynamo.NewLocations(client, cfg.LocationsTable)
		log.WithField("table", cfg.TrailsTable).Info("Хранилище: DynamoDB")
		return &App{
			TrailService:    service.NewTrailService(store),
			LocationService: service.NewLocationService(locations),
			close:           func() error { return nil },
		}, nil
	}

	conn, err := db.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.Driver).Info("Подключение к базе данных установлено")
	return &App{
		TrailService:    service.NewTrailService(repository.NewTrailRepository(conn)),
		LocationService: service.NewLocationService(repository.NewLocationRepository(conn)),
		close:           conn.Close,
	}, nil
}

// Close освобождает соединения с хранилищем.
func (a *App) Close() error {
	return a.close()
}
