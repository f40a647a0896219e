// Package data bundles a small sample panel so the service can start without
// a configured data directory.
package data

import "embed"

//go:embed *.csv
var Sample embed.FS
