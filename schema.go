// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package mvxabi

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/pk910/mvx-abi/abitypes"
	"github.com/pk910/mvx-abi/abiutils"
	"github.com/pk910/mvx-abi/address"
	"github.com/pk910/mvx-abi/buffer"
)

// FieldKind is the wire type of one schema field.
type FieldKind uint8

const (
	KindString FieldKind = iota + 1
	KindBytes
	KindBigUint
	KindU64
	KindU32
	KindU16
	KindU8
	KindBool
	KindAddress
)

var fieldKindNames = map[FieldKind]string{
	KindString:  "string",
	KindBytes:   "bytes",
	KindBigUint: "biguint",
	KindU64:     "u64",
	KindU32:     "u32",
	KindU16:     "u16",
	KindU8:      "u8",
	KindBool:    "bool",
	KindAddress: "address",
}

func (k FieldKind) String() string {
	if name, ok := fieldKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", uint8(k))
}

// ParseFieldKind accepts the same names as the abi-type tag.
func ParseFieldKind(name string) (FieldKind, error) {
	abiType, err := abitypes.ParseAbiType(name)
	if err != nil {
		return 0, err
	}
	return fieldKindFromAbiType(abiType)
}

func fieldKindFromAbiType(abiType abitypes.AbiType) (FieldKind, error) {
	switch abiType {
	case abitypes.AbiStringType:
		return KindString, nil
	case abitypes.AbiBytesType:
		return KindBytes, nil
	case abitypes.AbiBigUintType:
		return KindBigUint, nil
	case abitypes.AbiU64Type:
		return KindU64, nil
	case abitypes.AbiU32Type:
		return KindU32, nil
	case abitypes.AbiU16Type:
		return KindU16, nil
	case abitypes.AbiU8Type:
		return KindU8, nil
	case abitypes.AbiBoolType:
		return KindBool, nil
	case abitypes.AbiAddressType:
		return KindAddress, nil
	}
	return 0, fmt.Errorf("%w: %v can not be used as schema field", abiutils.ErrUnsupportedType, abiType)
}

func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FieldKind) UnmarshalText(text []byte) error {
	kind, err := ParseFieldKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// SchemaField is one entry of a schema.
type SchemaField struct {
	Name     string    `yaml:"name" json:"name"`
	Kind     FieldKind `yaml:"kind" json:"kind"`
	Required bool      `yaml:"required,omitempty" json:"required,omitempty"`
}

// Schema describes the return tuple of one contract view function as an
// ordered list of field kinds.
type Schema struct {
	Name     string        `yaml:"name" json:"name"`
	Function string        `yaml:"function" json:"function"`
	Fields   []SchemaField `yaml:"fields" json:"fields"`
}

// TupleValue is one decoded schema field.
//
// Missing is set when the buffer ended before the field, Value then holds
// the zero value of the field kind.
type TupleValue struct {
	Name    string    `json:"name"`
	Kind    FieldKind `json:"kind"`
	Value   any       `json:"value"`
	Missing bool      `json:"missing,omitempty"`
}

// Tuple is a decoded schema record in wire order.
type Tuple []TupleValue

// Get returns the value of the named field.
func (t Tuple) Get(name string) (any, bool) {
	for i := range t {
		if t[i].Name == name {
			return t[i].Value, true
		}
	}
	return nil, false
}

// Map returns the field values by name.
func (t Tuple) Map() map[string]any {
	values := make(map[string]any, len(t))
	for i := range t {
		values[t[i].Name] = t[i].Value
	}
	return values
}

// MissingFields returns the names of all defaulted fields.
func (t Tuple) MissingFields() []string {
	var missing []string
	for i := range t {
		if t[i].Missing {
			missing = append(missing, t[i].Name)
		}
	}
	return missing
}

// Validate checks the schema for unknown kinds and duplicate names.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema without name")
	}

	seen := make(map[string]bool, len(s.Fields))
	for idx, field := range s.Fields {
		if field.Name == "" {
			return fmt.Errorf("schema %v: field %v without name", s.Name, idx)
		}
		if seen[field.Name] {
			return fmt.Errorf("schema %v: duplicate field %v", s.Name, field.Name)
		}
		seen[field.Name] = true

		if _, ok := fieldKindNames[field.Kind]; !ok {
			return fmt.Errorf("schema %v: field %v has invalid kind %v", s.Name, field.Name, field.Kind)
		}
	}

	return nil
}

// Decode reads the schema fields from data in order.
//
// Like UnmarshalNested this is best-effort unless WithStrict is given.
// WithRequireFullConsumption and WithMissingFields are honoured as well.
func (s *Schema) Decode(data []byte, opts ...CallOption) (Tuple, error) {
	cfg := applyCallOptions(opts)
	decoder := buffer.NewBufferDecoder(data)

	tuple := make(Tuple, len(s.Fields))
	var missing []string

	for idx, field := range s.Fields {
		value, err := decodeFieldKind(decoder, field.Kind)
		if err != nil {
			if cfg.strict {
				return nil, fmt.Errorf("field %v: %w", field.Name, err)
			}
			value = zeroFieldValue(field.Kind)
			missing = append(missing, field.Name)
		}

		tuple[idx] = TupleValue{
			Name:    field.Name,
			Kind:    field.Kind,
			Value:   value,
			Missing: err != nil,
		}
	}

	if cfg.missingFields != nil {
		*cfg.missingFields = missing
	}

	if cfg.requireFullConsumption && decoder.GetLength() > 0 {
		return nil, fmt.Errorf("%w: %v bytes left after decoding", abiutils.ErrTrailingBytes, decoder.GetLength())
	}

	return tuple, nil
}

// DecodeBase64 decodes one base64 returnData item.
func (s *Schema) DecodeBase64(b64 string, opts ...CallOption) (Tuple, error) {
	cfg := applyCallOptions(opts)

	data, err := abiutils.DecodeBase64(b64)
	if err != nil {
		if cfg.strict {
			return nil, err
		}
		data = []byte{}
	}

	return s.Decode(data, opts...)
}

// IsAbsent reports whether a required field of the tuple holds its zero value.
func (s *Schema) IsAbsent(tuple Tuple) bool {
	for idx, field := range s.Fields {
		if !field.Required {
			continue
		}
		if idx >= len(tuple) || isZeroFieldValue(tuple[idx].Value) {
			return true
		}
	}
	return false
}

// Encode builds the nested encoding for the given field values. Fields not
// present in values are encoded as their zero value.
func (s *Schema) Encode(values map[string]any) ([]byte, error) {
	encoder := buffer.NewBufferEncoder(nil)

	for _, field := range s.Fields {
		value, ok := values[field.Name]
		if !ok || value == nil {
			value = zeroFieldValue(field.Kind)
		}

		if err := encodeFieldKind(encoder, field.Kind, value); err != nil {
			return nil, fmt.Errorf("field %v: %w", field.Name, err)
		}
	}

	return encoder.GetBuffer(), nil
}

// SchemaFromType derives a schema from a record type. Nested tuples are
// flattened with dotted field names, lists can not be expressed.
func (d *MvxAbi) SchemaFromType(t reflect.Type, name string, function string) (*Schema, error) {
	desc, err := d.typeCache.GetTypeDescriptor(t, nil, nil)
	if err != nil {
		return nil, err
	}
	if desc.AbiType != abitypes.AbiTupleType {
		return nil, fmt.Errorf("schemas can only be derived from tuple types, got %v", desc.AbiType)
	}

	schema := &Schema{
		Name:     name,
		Function: function,
	}
	if err := appendSchemaFields(schema, desc, ""); err != nil {
		return nil, err
	}

	return schema, nil
}

func appendSchemaFields(schema *Schema, desc *abitypes.TypeDescriptor, prefix string) error {
	for _, field := range desc.ContainerDesc.Fields {
		fieldName := field.Name
		if prefix != "" {
			fieldName = prefix + "." + field.Name
		}

		if field.Type.AbiType == abitypes.AbiTupleType {
			if err := appendSchemaFields(schema, field.Type, fieldName); err != nil {
				return err
			}
			continue
		}

		kind, err := fieldKindFromAbiType(field.Type.AbiType)
		if err != nil {
			return fmt.Errorf("field %v: %w", fieldName, err)
		}

		schema.Fields = append(schema.Fields, SchemaField{
			Name:     fieldName,
			Kind:     kind,
			Required: field.Required,
		})
	}

	return nil
}

func decodeFieldKind(decoder abiutils.Decoder, kind FieldKind) (any, error) {
	switch kind {
	case KindString:
		return decoder.DecodeString()
	case KindBytes:
		buf, err := decoder.DecodeNestedBytes()
		if err != nil {
			return nil, err
		}
		return append([]byte{}, buf...), nil
	case KindBigUint:
		return decoder.DecodeBigUint()
	case KindU64:
		return decoder.DecodeUint64()
	case KindU32:
		return decoder.DecodeUint32()
	case KindU16:
		return decoder.DecodeUint16()
	case KindU8:
		return decoder.DecodeUint8()
	case KindBool:
		return decoder.DecodeBool()
	case KindAddress:
		addr, err := decoder.DecodeAddress()
		if err != nil {
			return nil, err
		}
		return address.Address(addr), nil
	}
	return nil, fmt.Errorf("%w: field kind %v", abiutils.ErrUnsupportedType, kind)
}

func zeroFieldValue(kind FieldKind) any {
	switch kind {
	case KindString:
		return ""
	case KindBytes:
		return []byte{}
	case KindBigUint:
		return new(big.Int)
	case KindU64:
		return uint64(0)
	case KindU32:
		return uint32(0)
	case KindU16:
		return uint16(0)
	case KindU8:
		return uint8(0)
	case KindBool:
		return false
	case KindAddress:
		return address.Zero
	}
	return nil
}

func isZeroFieldValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case *big.Int:
		return v == nil || v.Sign() == 0
	case []byte:
		return len(v) == 0
	case address.Address:
		return v.IsZero()
	}
	return reflect.ValueOf(value).IsZero()
}

func encodeFieldKind(encoder abiutils.Encoder, kind FieldKind, value any) error {
	switch kind {
	case KindString:
		switch v := value.(type) {
		case string:
			encoder.EncodeString(v)
		case []byte:
			encoder.EncodeNestedBytes(v)
		default:
			return fmt.Errorf("expected string, got %T", value)
		}
	case KindBytes:
		switch v := value.(type) {
		case []byte:
			encoder.EncodeNestedBytes(v)
		case string:
			encoder.EncodeString(v)
		default:
			return fmt.Errorf("expected []byte, got %T", value)
		}
	case KindBigUint:
		v, err := toBigUint(value)
		if err != nil {
			return err
		}
		encoder.EncodeBigUint(v)
	case KindU64, KindU32, KindU16, KindU8:
		v, err := toUint(value, kind)
		if err != nil {
			return err
		}
		switch kind {
		case KindU64:
			encoder.EncodeUint64(v)
		case KindU32:
			encoder.EncodeUint32(uint32(v))
		case KindU16:
			encoder.EncodeUint16(uint16(v))
		default:
			encoder.EncodeUint8(uint8(v))
		}
	case KindBool:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		encoder.EncodeBool(v)
	case KindAddress:
		switch v := value.(type) {
		case address.Address:
			encoder.EncodeAddress(v)
		case [abiutils.AddressLength]byte:
			encoder.EncodeAddress(v)
		case string:
			addr, err := address.Parse(v)
			if err != nil {
				return err
			}
			encoder.EncodeAddress(addr)
		default:
			return fmt.Errorf("expected address, got %T", value)
		}
	default:
		return fmt.Errorf("%w: field kind %v", abiutils.ErrUnsupportedType, kind)
	}

	return nil
}

func toBigUint(value any) (*big.Int, error) {
	var v *big.Int
	switch val := value.(type) {
	case *big.Int:
		if val == nil {
			return new(big.Int), nil
		}
		v = val
	case string:
		parsed, ok := new(big.Int).SetString(val, 10)
		if !ok {
			return nil, fmt.Errorf("invalid biguint %q", val)
		}
		v = parsed
	default:
		u, err := toUint(value, KindU64)
		if err != nil {
			return nil, err
		}
		v = new(big.Int).SetUint64(u)
	}

	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative value %v can not be encoded as biguint", v)
	}
	return v, nil
}

func toUint(value any, kind FieldKind) (uint64, error) {
	var v uint64
	switch val := value.(type) {
	case uint64:
		v = val
	case uint32:
		v = uint64(val)
	case uint16:
		v = uint64(val)
	case uint8:
		v = uint64(val)
	case uint:
		v = uint64(val)
	case int:
		if val < 0 {
			return 0, fmt.Errorf("negative value %v", val)
		}
		v = uint64(val)
	case int64:
		if val < 0 {
			return 0, fmt.Errorf("negative value %v", val)
		}
		v = uint64(val)
	default:
		return 0, fmt.Errorf("expected unsigned integer, got %T", value)
	}

	var maxVal uint64
	switch kind {
	case KindU32:
		maxVal = 1<<32 - 1
	case KindU16:
		maxVal = 1<<16 - 1
	case KindU8:
		maxVal = 1<<8 - 1
	default:
		return v, nil
	}
	if v > maxVal {
		return 0, fmt.Errorf("value %v overflows %v", v, kind)
	}

	return v, nil
}
