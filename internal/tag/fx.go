package tag

import (
	"github.com/pantryworks/pantry/internal/tag/repository"
	"github.com/pantryworks/pantry/internal/tag/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tag.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
