package openfoodfacts

import "go.uber.org/fx"

var Module = fx.Module("providers.openfoodfacts",
	fx.Provide(NewClient),
	fx.Provide(func(c *Client) Lookup { return c }),
)
