// Package api embeds the OpenAPI description of the HTTP API.
package api

import (
	_ "embed"
)

//go:embed openapi.json
var OpenAPI []byte
