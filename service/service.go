package service

import (
	"sync"

	"athenaeum/config"
	"athenaeum/internal/jsonlog"
	"athenaeum/repository"
)

type Service interface {
	books
	authors
	genres
	loans
	wishlist
	reviews
	users
	tokens
	failedValidation(map[string]string) error
}

// service defines the app's service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
	}
}
