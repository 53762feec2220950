// Package embedded holds the demo dataset compiled into the binary.
package embedded

import (
	"embed"
)

// FS embeds the demo menu dataset used when no --dataset file is given.
//
//go:embed dataset/*
var FS embed.FS

// DatasetPath is the path of the default dataset inside FS.
const DatasetPath = "dataset/menu.yaml"
