package middle

import "go.uber.org/fx"

// Module provides all middleware
var Module = fx.Module("middle",
	fx.Provide(
		NewCORSMiddleware,
		NewRequestLogMiddleware,
	),
)
