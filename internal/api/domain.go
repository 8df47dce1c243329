package api

import (
	"github.com/JaimeStill/organizer/internal/archive"
	"github.com/JaimeStill/organizer/internal/organizer"
	"github.com/JaimeStill/organizer/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Engine  *organizer.Engine
	Archive *archive.Archive
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	store := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	engine := organizer.New(
		store,
		runtime.Logger,
		runtime.Locale,
	)

	return &Domain{
		Engine:  engine,
		Archive: archive.New(engine, runtime.Storage, runtime.Logger),
	}
}
