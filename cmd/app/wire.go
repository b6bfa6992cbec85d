//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-stylist/internal/bootstrap"
	"github.com/yanqian/weather-stylist/internal/domain/conversation"
	"github.com/yanqian/weather-stylist/internal/domain/genjob"
	"github.com/yanqian/weather-stylist/internal/domain/photos"
	"github.com/yanqian/weather-stylist/internal/domain/weather"
	"github.com/yanqian/weather-stylist/internal/infra/config"
	"github.com/yanqian/weather-stylist/internal/infra/kieai"
	"github.com/yanqian/weather-stylist/internal/infra/openweather"
	httpiface "github.com/yanqian/weather-stylist/internal/interface/http"
	"github.com/yanqian/weather-stylist/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeatherConfig,
		provideWeatherClient,
		providePhotoConfig,
		providePhotoProvider,
		providePhotoStore,
		provideGenJobConfig,
		provideGenJobClient,
		provideArchiver,
		provideTranscriptRepository,
		weather.NewService,
		photos.NewService,
		genjob.NewService,
		conversation.NewService,
		wire.Bind(new(weather.Provider), new(*openweather.Client)),
		wire.Bind(new(genjob.Provider), new(*kieai.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
