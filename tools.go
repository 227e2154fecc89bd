//go:build tools
// +build tools

// Package tools pins CLI dependencies to go.mod.
// See https://go.dev/wiki/Modules#how-can-i-track-tool-dependencies-for-a-module
package tools

import (
	_ "github.com/swaggo/swag/cmd/swag"
)
