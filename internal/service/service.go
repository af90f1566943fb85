// Package service implements the dashboard logic over the store.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/opspulse/dashboard/internal/config"
	"github.com/opspulse/dashboard/internal/store"
)

type Service struct {
	store  store.Store
	config *config.Config
	logger zerolog.Logger
}

func New(store store.Store, cfg *config.Config, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// Ping checks the store connection.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
