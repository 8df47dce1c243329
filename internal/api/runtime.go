package api

import (
	"golang.org/x/text/language"

	"github.com/JaimeStill/organizer/internal/config"
	"github.com/JaimeStill/organizer/internal/infrastructure"
	"github.com/JaimeStill/organizer/pkg/formatting"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Locale      language.Tag
	MaxBodySize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	scoped.Logger.Info(
		"api runtime configured",
		"base_path", cfg.API.BasePath,
		"locale", cfg.Library.Locale,
		"max_body_size", formatting.FormatBytes(cfg.API.MaxBodySizeBytes(), 0),
	)

	return &Runtime{
		Infrastructure: &scoped,
		Locale:         cfg.Library.LocaleTag(),
		MaxBodySize:    cfg.API.MaxBodySizeBytes(),
	}
}
