package storefront

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the release version of the storefront module.
var Version = strings.TrimSpace(rawVersion)
