package config

import "go.uber.org/fx"

// Module exposes the environment, dotenv and flag backed configuration loader.
var Module = fx.Provide(Load)
