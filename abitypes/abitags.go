// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abitypes

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pk910/mvx-abi/abiutils"
)

type AbiType uint8

const (
	AbiUnspecifiedType AbiType = iota
	AbiCustomType
	AbiSkipType

	// fixed width types
	AbiBoolType
	AbiU8Type
	AbiU16Type
	AbiU32Type
	AbiU64Type
	AbiAddressType

	// length prefixed types
	AbiBytesType
	AbiStringType
	AbiBigUintType

	// composite types
	AbiTupleType
	AbiListType
)

var abiTypeNames = map[AbiType]string{
	AbiUnspecifiedType: "auto",
	AbiCustomType:      "custom",
	AbiSkipType:        "skip",
	AbiBoolType:        "bool",
	AbiU8Type:          "u8",
	AbiU16Type:         "u16",
	AbiU32Type:         "u32",
	AbiU64Type:         "u64",
	AbiAddressType:     "address",
	AbiBytesType:       "bytes",
	AbiStringType:      "string",
	AbiBigUintType:     "biguint",
	AbiTupleType:       "tuple",
	AbiListType:        "list",
}

func (t AbiType) String() string {
	if name, ok := abiTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AbiType(%d)", uint8(t))
}

// FixedSize returns the encoded width of fixed width types, 0 otherwise.
func (t AbiType) FixedSize() uint32 {
	switch t {
	case AbiBoolType, AbiU8Type:
		return 1
	case AbiU16Type:
		return 2
	case AbiU32Type:
		return 4
	case AbiU64Type:
		return 8
	case AbiAddressType:
		return abiutils.AddressLength
	}
	return 0
}

// ParseAbiType accepts our short names as well as the type names used in
// MultiversX ABI json files.
func ParseAbiType(name string) (AbiType, error) {
	switch strings.TrimSpace(name) {
	case "?", "auto", "":
		return AbiUnspecifiedType, nil
	case "custom":
		return AbiCustomType, nil
	case "-", "skip":
		return AbiSkipType, nil
	case "bool":
		return AbiBoolType, nil
	case "u8", "uint8":
		return AbiU8Type, nil
	case "u16", "uint16":
		return AbiU16Type, nil
	case "u32", "uint32":
		return AbiU32Type, nil
	case "u64", "uint64", "TokenNonce":
		return AbiU64Type, nil
	case "address", "Address":
		return AbiAddressType, nil
	case "bytes", "buffer", "ManagedBuffer", "bytes[]":
		return AbiBytesType, nil
	case "string", "utf-8 string", "TokenIdentifier", "EgldOrEsdtTokenIdentifier":
		return AbiStringType, nil
	case "biguint", "BigUint":
		return AbiBigUintType, nil
	case "tuple", "struct":
		return AbiTupleType, nil
	case "list", "List", "ManagedVec":
		return AbiListType, nil
	}
	return AbiUnspecifiedType, fmt.Errorf("unknown abi type %q", name)
}

type AbiTypeHint struct {
	Type AbiType
}

// AbiMaxHint carries the max length from abi-max / dynabi-max annotations.
//
// Fields:
//   - Size: the static or resolved max length
//   - NoValue: set for "?" entries
//   - Custom: set when the value was resolved from a spec value
//   - Expr: the unresolved dynabi-max expression
type AbiMaxHint struct {
	Size    uint64
	NoValue bool
	Custom  bool
	Expr    string
}

func getAbiTypeTag(field *reflect.StructField) ([]AbiTypeHint, error) {
	typeHints := []AbiTypeHint{}

	if fieldAbiTypeStr, ok := field.Tag.Lookup("abi-type"); ok {
		for _, typeStr := range strings.Split(fieldAbiTypeStr, ",") {
			abiType, err := ParseAbiType(typeStr)
			if err != nil {
				return nil, fmt.Errorf("invalid abi-type tag for '%v' field: %v", field.Name, err)
			}
			typeHints = append(typeHints, AbiTypeHint{Type: abiType})
		}
	}

	return typeHints, nil
}

func getAbiMaxTag(specs abiutils.DynamicSpecs, field *reflect.StructField) ([]AbiMaxHint, error) {
	maxHints := []AbiMaxHint{}

	// parse `abi-max` first, these are the defaults used when no spec value is known
	if fieldAbiMaxStr, ok := field.Tag.Lookup("abi-max"); ok {
		for _, maxStr := range strings.Split(fieldAbiMaxStr, ",") {
			maxHint := AbiMaxHint{}

			if maxStr == "?" {
				maxHint.NoValue = true
			} else {
				maxInt, err := strconv.ParseUint(maxStr, 10, 64)
				if err != nil {
					return maxHints, fmt.Errorf("error parsing abi-max tag for '%v' field: %v", field.Name, err)
				}
				maxHint.Size = maxInt
			}

			maxHints = append(maxHints, maxHint)
		}
	}

	fieldDynAbiMaxStr, ok := field.Tag.Lookup("dynabi-max")
	if ok {
		for i, maxStr := range strings.Split(fieldDynAbiMaxStr, ",") {
			maxHint := AbiMaxHint{}
			isExpr := false

			if maxStr == "?" {
				maxHint.NoValue = true
			} else if maxInt, err := strconv.ParseUint(maxStr, 10, 64); err == nil {
				maxHint.Size = maxInt
			} else {
				if specs == nil {
					return maxHints, fmt.Errorf("dynabi-max tag for '%v' field needs spec values", field.Name)
				}

				ok, specVal, err := specs.ResolveSpecValue(maxStr)
				if err != nil {
					return maxHints, fmt.Errorf("error parsing dynabi-max tag for '%v' field (%v): %v", field.Name, maxStr, err)
				}

				isExpr = true
				if ok {
					maxHint.Size = specVal
					maxHint.Custom = true
				} else {
					// unknown spec value, keep the abi-max default
					if i < len(maxHints) {
						maxHints[i].Expr = maxStr
					}
					continue
				}
			}

			if i >= len(maxHints) {
				maxHints = append(maxHints, maxHint)
			} else if maxHints[i].Size != maxHint.Size || maxHints[i].NoValue != maxHint.NoValue {
				maxHints[i] = maxHint
			}

			if isExpr {
				maxHints[i].Expr = maxStr
			}
		}
	}

	return maxHints, nil
}

func getAbiRequiredTag(field *reflect.StructField) (bool, error) {
	requiredStr, ok := field.Tag.Lookup("abi-required")
	if !ok {
		return false, nil
	}

	required, err := strconv.ParseBool(requiredStr)
	if err != nil {
		return false, fmt.Errorf("error parsing abi-required tag for '%v' field: %v", field.Name, err)
	}

	return required, nil
}
