// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package mvxabi

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schemas/festival.yaml
var festivalSchemasYaml []byte

type schemaDocument struct {
	Schemas []*Schema `yaml:"schemas"`
}

// LoadSchemas parses a YAML document with a top level "schemas" list.
func LoadSchemas(r io.Reader) ([]*Schema, error) {
	doc := schemaDocument{}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("error parsing schemas: %w", err)
	}

	for _, schema := range doc.Schemas {
		if err := schema.Validate(); err != nil {
			return nil, err
		}
	}

	return doc.Schemas, nil
}

// SchemaRegistry holds schemas by name and by contract function.
type SchemaRegistry struct {
	mutex      sync.RWMutex
	byName     map[string]*Schema
	byFunction map[string]*Schema
}

func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		byName:     map[string]*Schema{},
		byFunction: map[string]*Schema{},
	}
}

// DefaultSchemaRegistry returns a new registry with the festival contract
// schemas registered.
func DefaultSchemaRegistry() *SchemaRegistry {
	registry := NewSchemaRegistry()

	schemas, err := LoadSchemas(bytes.NewReader(festivalSchemasYaml))
	if err != nil {
		panic(fmt.Sprintf("invalid builtin schemas: %v", err))
	}
	for _, schema := range schemas {
		if err := registry.Register(schema); err != nil {
			panic(fmt.Sprintf("invalid builtin schemas: %v", err))
		}
	}

	return registry
}

// Register adds a schema, replacing any schema with the same name.
func (r *SchemaRegistry) Register(schema *Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if old := r.byName[schema.Name]; old != nil && old.Function != "" {
		delete(r.byFunction, old.Function)
	}

	r.byName[schema.Name] = schema
	if schema.Function != "" {
		r.byFunction[schema.Function] = schema
	}

	return nil
}

// LoadFrom registers all schemas of a YAML document.
func (r *SchemaRegistry) LoadFrom(reader io.Reader) error {
	schemas, err := LoadSchemas(reader)
	if err != nil {
		return err
	}

	for _, schema := range schemas {
		if err := r.Register(schema); err != nil {
			return err
		}
	}

	return nil
}

func (r *SchemaRegistry) Get(name string) (*Schema, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	schema, ok := r.byName[name]
	return schema, ok
}

func (r *SchemaRegistry) ByFunction(function string) (*Schema, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	schema, ok := r.byFunction[function]
	return schema, ok
}

// Names returns the registered schema names in sorted order.
func (r *SchemaRegistry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
