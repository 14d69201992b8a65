// Package migrations embeds the goose SQL migrations for both stores.
//
// sqlite/ holds the client-local schema (identity + suggestion cache);
// postgres/ holds the optional shared suggestion cache.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
