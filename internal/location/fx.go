package location

import (
	"github.com/pantryworks/pantry/internal/location/repository"
	"github.com/pantryworks/pantry/internal/location/service"
	"go.uber.org/fx"
)

var Module = fx.Module("location.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
