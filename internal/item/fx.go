package item

import (
	"github.com/pantryworks/pantry/internal/item/repository"
	"github.com/pantryworks/pantry/internal/item/service"
	"go.uber.org/fx"
)

var Module = fx.Module("item.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
