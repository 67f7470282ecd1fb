//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/huntcast/internal/bootstrap"
	"github.com/yanqian/huntcast/internal/domain/activity"
	"github.com/yanqian/huntcast/internal/infra/config"
	httpiface "github.com/yanqian/huntcast/internal/interface/http"
	"github.com/yanqian/huntcast/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideReferenceData,
		provideRules,
		providePlanner,
		provideActivityConfig,
		provideProfileCatalog,
		provideHuntingConfig,
		provideObservationRepository,
		provideResultStore,
		provideHuntingService,
		activity.NewPredictor,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
