// Package migrations esquema de base de datos en formato goose, embebido en el binario.
package migrations

import "embed"

// FS archivos SQL de migración.
//
//go:embed *.sql
var FS embed.FS
