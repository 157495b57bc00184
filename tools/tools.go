//go:build tools

package tools

// This file tracks tool dependencies for reproducible builds.
// goose manages internal/adapters/postgres/migrations; oapi-codegen renders
// the chi strict server in internal/api from api/openapi.yaml (go generate ./...).
import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
