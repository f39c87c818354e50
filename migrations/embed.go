// Package migrations embeds the SQL migration files so the goose
// provider can apply them from dbtool and from tests without a
// filesystem checkout.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Hand it to goose.NewProvider as the migration source.
//
//go:embed *.sql
var FS embed.FS
