// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package mvxabi

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/pk910/mvx-abi/abitypes"
	"github.com/pk910/mvx-abi/abiutils"
	"github.com/pk910/mvx-abi/buffer"
	"github.com/pk910/mvx-abi/reflection"
)

// MvxAbi decodes and encodes Go records in the MultiversX nested encoding
// using runtime reflection.
//
// Records are plain structs, their exported fields are read back to back in
// declaration order. The wire type of a field is derived from its Go type and
// can be overridden with an `abi-type` tag:
//
//	type FestivalData struct {
//	    ID            uint64
//	    Name          string   `abi-required:"true" abi-max:"256"`
//	    TicketPrice   *big.Int
//	    MaxTickets    uint64
//	    TicketsSold   uint64
//	    Owner         address.Address
//	    ...
//	}
//
// Buffers and lists can be bounded with `abi-max` and `dynabi-max` tags, the
// latter being an expression evaluated against the spec values of the
// instance.
//
// The instance caches type descriptors and is safe for concurrent use.
type MvxAbi struct {
	typeCache      *abitypes.TypeCache
	specValues     map[string]any
	specValueCache map[string]*cachedSpecValue
	specMutex      sync.Mutex
	reflection     *reflection.ReflectionCtx

	// Verbose enables detailed logging of decoding operations.
	Verbose bool

	logCb func(format string, args ...any)
}

// NewMvxAbi creates a new instance of the MvxAbi decoder.
//
// The specs map contains the values that dynabi-max expressions can refer to.
// It can be nil when no record type uses such expressions.
//
// Example:
//
//	abi := mvxabi.NewMvxAbi(map[string]any{
//	    "MAX_NAME_LENGTH": uint64(128),
//	}, mvxabi.WithVerbose())
func NewMvxAbi(specs map[string]any, options ...MvxAbiOption) *MvxAbi {
	if specs == nil {
		specs = map[string]any{}
	}

	opts := &MvxAbiOptions{}
	for _, option := range options {
		option(opts)
	}

	mvxabi := &MvxAbi{
		specValues:     specs,
		specValueCache: map[string]*cachedSpecValue{},
		Verbose:        opts.Verbose,
		logCb:          opts.LogCb,
	}
	if mvxabi.logCb == nil {
		mvxabi.logCb = func(format string, args ...any) {
			fmt.Printf(format, args...)
		}
	}
	mvxabi.typeCache = abitypes.NewTypeCache(mvxabi)
	mvxabi.reflection = reflection.NewReflectionCtx(mvxabi, mvxabi.logCb, mvxabi.Verbose)

	return mvxabi
}

// GetTypeCache returns the type cache for the MvxAbi instance.
func (d *MvxAbi) GetTypeCache() *abitypes.TypeCache {
	return d.typeCache
}

// UnmarshalNested decodes one nested encoded record into target.
//
// target must be a pointer. Decoding is best-effort by default: fields that
// do not fit into the remaining bytes are left at their zero value and no
// error is returned. Use WithStrict to get an error instead and
// WithMissingFields to learn which fields were defaulted.
//
// Example:
//
//	var festival FestivalData
//	if err := abi.UnmarshalNested(&festival, data); err != nil {
//	    return err
//	}
func (d *MvxAbi) UnmarshalNested(target any, data []byte, opts ...CallOption) error {
	cfg := applyCallOptions(opts)
	return d.unmarshalNested(target, buffer.NewBufferDecoder(data), cfg)
}

// UnmarshalBase64 decodes a base64 returnData item into target.
//
// Malformed base64 is treated as an empty buffer, so in best-effort mode the
// result is the zero record. In strict mode the base64 error is returned.
func (d *MvxAbi) UnmarshalBase64(target any, b64 string, opts ...CallOption) error {
	cfg := applyCallOptions(opts)

	data, err := abiutils.DecodeBase64(b64)
	if err != nil {
		if cfg.strict {
			return err
		}
		data = []byte{}
	}

	return d.unmarshalNested(target, buffer.NewBufferDecoder(data), cfg)
}

// UnmarshalDecoder decodes a record from an existing decoder, continuing at
// its current position. Used for responses that carry several records in one
// buffer.
func (d *MvxAbi) UnmarshalDecoder(target any, decoder abiutils.Decoder, opts ...CallOption) error {
	cfg := applyCallOptions(opts)
	return d.unmarshalNested(target, decoder, cfg)
}

func (d *MvxAbi) unmarshalNested(target any, decoder abiutils.Decoder, cfg *callConfig) error {
	targetType := reflect.TypeOf(target)
	targetValue := reflect.ValueOf(target)

	if targetType == nil || targetType.Kind() != reflect.Ptr || targetValue.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %v", targetType)
	}

	targetTypeDesc, err := d.typeCache.GetTypeDescriptor(targetType.Elem(), nil, nil)
	if err != nil {
		return err
	}

	state := &reflection.DecodeState{
		Strict: cfg.strict,
	}

	err = d.reflection.UnmarshalNested(targetTypeDesc, targetValue.Elem(), decoder, state)
	if cfg.missingFields != nil {
		*cfg.missingFields = state.Missing
	}
	if err != nil {
		return err
	}

	if cfg.requireFullConsumption && decoder.GetLength() > 0 {
		return fmt.Errorf("%w: %v bytes left after decoding", abiutils.ErrTrailingBytes, decoder.GetLength())
	}

	return nil
}

// MarshalNested encodes source into its nested encoding. It is the inverse
// of UnmarshalNested and is used to build fixtures and query arguments.
func (d *MvxAbi) MarshalNested(source any) ([]byte, error) {
	return d.MarshalNestedTo(source, nil)
}

// MarshalNestedTo appends the nested encoding of source to buf.
func (d *MvxAbi) MarshalNestedTo(source any, buf []byte) ([]byte, error) {
	sourceType := reflect.TypeOf(source)
	sourceValue := reflect.ValueOf(source)

	if sourceType == nil {
		return nil, fmt.Errorf("can not encode nil")
	}

	sourceTypeDesc, err := d.typeCache.GetTypeDescriptor(sourceType, nil, nil)
	if err != nil {
		return nil, err
	}

	if buf == nil {
		size, err := d.reflection.SizeNested(sourceTypeDesc, sourceValue)
		if err != nil {
			return nil, err
		}
		buf = make([]byte, 0, size)
	}

	encoder := buffer.NewBufferEncoder(buf)
	if err := d.reflection.MarshalNested(sourceTypeDesc, sourceValue, encoder); err != nil {
		return nil, err
	}

	return encoder.GetBuffer(), nil
}

// MarshalBase64 encodes source and returns it as base64, the way contract
// responses carry it.
func (d *MvxAbi) MarshalBase64(source any) (string, error) {
	data, err := d.MarshalNested(source)
	if err != nil {
		return "", err
	}
	return abiutils.ToBase64(data), nil
}

// SizeNested returns the size of the nested encoding of source.
func (d *MvxAbi) SizeNested(source any) (int, error) {
	sourceTypeDesc, err := d.typeCache.GetTypeDescriptor(reflect.TypeOf(source), nil, nil)
	if err != nil {
		return 0, err
	}

	size, err := d.reflection.SizeNested(sourceTypeDesc, reflect.ValueOf(source))
	if err != nil {
		return 0, err
	}

	return int(size), nil
}

// IsAbsent reports whether a decoded record is the "not found" answer of a
// contract, which the contract signals by an empty or zeroed response.
//
// A record type marks the field that decides this with `abi-required:"true"`.
// The record is absent when that field holds its zero value. Types without a
// required field are never absent.
func (d *MvxAbi) IsAbsent(record any) (bool, error) {
	recordType := reflect.TypeOf(record)
	if recordType == nil {
		return true, nil
	}

	recordTypeDesc, err := d.typeCache.GetTypeDescriptor(recordType, nil, nil)
	if err != nil {
		return false, err
	}

	return d.reflection.IsAbsent(recordTypeDesc, reflect.ValueOf(record)), nil
}

// ValidateType checks whether a type can be decoded and encoded.
//
// Example usage:
//
//	if err := abi.ValidateType(reflect.TypeOf(FestivalData{})); err != nil {
//	    log.Fatal("unsupported record type:", err)
//	}
func (d *MvxAbi) ValidateType(t reflect.Type) error {
	_, err := d.typeCache.GetTypeDescriptor(t, nil, nil)
	return err
}
