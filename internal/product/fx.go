package product

import (
	"github.com/pantryworks/pantry/internal/product/repository"
	"github.com/pantryworks/pantry/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
