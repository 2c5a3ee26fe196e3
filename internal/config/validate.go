package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed config_schema.json
var configSchemaJSON []byte

var (
	schemaOnce      sync.Once
	schemaLoadErr   error
	appConfigSchema *openapi3.Schema
)

func loadSchema() error {
	schemaOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(configSchemaJSON)
		if err != nil {
			schemaLoadErr = fmt.Errorf("config: parse embedded schema: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			schemaLoadErr = fmt.Errorf("config: embedded schema invalid: %w", err)
			return
		}
		ref, ok := doc.Components.Schemas["AppConfig"]
		if !ok || ref.Value == nil {
			schemaLoadErr = fmt.Errorf("config: embedded schema missing AppConfig definition")
			return
		}
		appConfigSchema = ref.Value
	})
	return schemaLoadErr
}

// ValidateConfigBytes validates JSON config bytes against the embedded
// OpenAPI 3 schema for AppConfig before the configuration is accepted.
func ValidateConfigBytes(b []byte) error {
	if err := loadSchema(); err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("config: invalid json: %w", err)
	}
	if err := appConfigSchema.VisitJSON(v); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}
