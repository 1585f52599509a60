package oauth2

import (
	"embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

// grantSchemas compiles the schema of every built-in grant on first use.
var grantSchemas = sync.OnceValues(func() (map[GrantType]*gojsonschema.Schema, error) {
	schemas := make(map[GrantType]*gojsonschema.Schema, len(grantVariants))
	for _, variant := range grantVariants {
		data, err := schemaFiles.ReadFile(fmt.Sprintf("schemas/%s.schema.json", variant.grantType))
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", variant.grantType, err)
		}
		schemas[variant.grantType] = schema
	}
	return schemas, nil
})

// GrantSchema returns the raw JSON schema of a built-in grant request.
func GrantSchema(grantType GrantType) ([]byte, bool) {
	data, err := schemaFiles.ReadFile(fmt.Sprintf("schemas/%s.schema.json", grantType))
	if err != nil {
		return nil, false
	}
	return data, true
}

func validateGrantSchema(grantType GrantType, document gojsonschema.JSONLoader) error {
	schemas, err := grantSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[grantType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(document)
	if err != nil {
		return &DecodeError{Err: err}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &SchemaError{GrantType: grantType, Problems: problems}
}
