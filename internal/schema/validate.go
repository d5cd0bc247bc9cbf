// Package schema provides JSON schema validation for gantry descriptors and suites.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/gantry/schema"
)

const (
	descriptorSchemaName = "descriptor.schema.json"
	suiteSchemaName      = "suite.schema.json"
)

var (
	descriptorSchema *jsonschema.Schema
	suiteSchema      *jsonschema.Schema
	compileOnce      sync.Once
	compileErr       error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		for _, name := range []string{descriptorSchemaName, suiteSchemaName} {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		descriptorSchema, err = compiler.Compile(descriptorSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile descriptor schema: %w", err)
			return
		}

		suiteSchema, err = compiler.Compile(suiteSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile suite schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateDescriptor validates JSON data against the build descriptor schema.
func ValidateDescriptor(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := descriptorSchema.Validate(v); err != nil {
		return fmt.Errorf("descriptor validation failed: %w", err)
	}

	return nil
}

// ValidateSuite validates JSON data against the acceptance suite schema.
// Suites are authored in YAML; callers convert them to JSON first.
func ValidateSuite(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := suiteSchema.Validate(v); err != nil {
		return fmt.Errorf("suite validation failed: %w", err)
	}

	return nil
}
