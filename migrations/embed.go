// Package migrations содержит SQL схему хранилища снапшотов для goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
