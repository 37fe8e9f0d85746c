package cursorfx

import (
	_ "embed"
)

//go:embed overlay.wgsl
var OverlayWGSL string
