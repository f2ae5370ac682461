package ports

import "go.trai.ch/forge/internal/core/domain"

// ConfigLoader loads the project configuration into a build session.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and
	// returns a session populated with every declared target.
	Load(cwd string) (*domain.Session, error)
}
