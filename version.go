package portcfg

import (
	_ "embed"
)

// Version is the release of the portcfg module.
//
//go:embed VERSION
var Version string
