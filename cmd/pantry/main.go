package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pantryworks/pantry/internal/config"
	"github.com/pantryworks/pantry/internal/item"
	"github.com/pantryworks/pantry/internal/location"
	"github.com/pantryworks/pantry/internal/migration"
	"github.com/pantryworks/pantry/internal/observability"
	"github.com/pantryworks/pantry/internal/product"
	"github.com/pantryworks/pantry/internal/providers/openfoodfacts"
	"github.com/pantryworks/pantry/internal/server"
	"github.com/pantryworks/pantry/internal/tag"
	"github.com/pantryworks/pantry/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		location.Module,
		tag.Module,
		product.Module,
		item.Module,
		openfoodfacts.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
