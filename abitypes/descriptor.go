// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abitypes

import (
	"reflect"
)

// AbiTypeFlag is a flag indicating whether a type has a specific ABI type feature
type AbiTypeFlag uint8

const (
	AbiTypeFlagIsDynamic     AbiTypeFlag = 1 << iota // Whether the encoded size depends on the value
	AbiTypeFlagHasLimit                              // Whether the type has a max length tag
	AbiTypeFlagHasDynamicMax                         // Whether the max length was resolved from a spec value
	AbiTypeFlagHasMaxExpr                            // Whether the max length uses an expression
)

// AbiCompatFlag is a flag indicating whether a type implements a specific codec interface
type AbiCompatFlag uint8

const (
	AbiCompatFlagNestedDecoder AbiCompatFlag = 1 << iota // Whether the type implements abiutils.NestedDecoder
	AbiCompatFlagNestedEncoder                           // Whether the type implements abiutils.NestedEncoder
)

type GoTypeFlag uint8

const (
	GoTypeFlagIsPointer   GoTypeFlag = 1 << iota // Whether the type is a pointer type
	GoTypeFlagIsByteArray                        // Whether the type is a byte array or slice
	GoTypeFlagIsString                           // Whether the type is a string type
	GoTypeFlagIsBigInt                           // Whether the type is math/big.Int
)

// TypeDescriptor represents a cached descriptor for a type's ABI encoding/decoding
type TypeDescriptor struct {
	Type          reflect.Type         `json:"-"`                   // Reflect type
	Kind          reflect.Kind         `json:"kind"`                // Reflect kind of the (dereferenced) type
	Size          uint32               `json:"size"`                // Encoded size (0 if dynamic)
	Limit         uint64               `json:"limit"`               // Max length of buffers and lists (abi-max tag)
	ContainerDesc *ContainerDescriptor `json:"container,omitempty"` // For tuples
	ElemDesc      *TypeDescriptor      `json:"elem,omitempty"`      // For lists
	MaxExpression *string              `json:"max_expr,omitempty"`  // The dynamic expression used to calculate the max length
	AbiType       AbiType              `json:"type"`                // ABI type of the type
	AbiTypeFlags  AbiTypeFlag          `json:"flags"`               // ABI type flags
	CompatFlags   AbiCompatFlag        `json:"compat"`              // Codec interface flags
	GoTypeFlags   GoTypeFlag           `json:"go_flags"`            // Additional go type flags
}

// ContainerDescriptor describes the fields of a tuple in wire order.
type ContainerDescriptor struct {
	Fields        []FieldDescriptor `json:"fields"`
	RequiredField int               `json:"required"` // Index into Fields, -1 if no field is required
}

// FieldDescriptor represents a cached descriptor for a struct field
type FieldDescriptor struct {
	Name       string          `json:"name"`
	Type       *TypeDescriptor `json:"type"`
	FieldIndex uint16          `json:"field_index"` // Index into the struct's field list
	Required   bool            `json:"required,omitempty"`
}

func (d *TypeDescriptor) IsPointer() bool {
	return d.GoTypeFlags&GoTypeFlagIsPointer != 0
}

func (d *TypeDescriptor) IsDynamic() bool {
	return d.AbiTypeFlags&AbiTypeFlagIsDynamic != 0
}

func (d *TypeDescriptor) HasLimit() bool {
	return d.AbiTypeFlags&AbiTypeFlagHasLimit != 0
}
