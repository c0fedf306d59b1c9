package docs

import _ "embed"

// OpenAPI is the embedded API description served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
