// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package mvxabi

import (
	"fmt"

	"github.com/pk910/mvx-abi/abiutils"
)

// DecodeEach decodes every returnData item into its own record of type T.
//
// Each item is decoded independently from offset 0. Absent records are
// dropped, the order of the remaining records is preserved.
func DecodeEach[T any](abi *MvxAbi, returnData []string, opts ...CallOption) ([]*T, error) {
	if abi == nil {
		abi = GetGlobalMvxAbi()
	}

	records := make([]*T, 0, len(returnData))
	for idx, item := range returnData {
		record := new(T)
		if err := abi.UnmarshalBase64(record, item, opts...); err != nil {
			return nil, fmt.Errorf("returnData[%d]: %w", idx, err)
		}

		absent, err := abi.IsAbsent(record)
		if err != nil {
			return nil, err
		}
		if absent {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// DecodeFirst decodes the first returnData item into target.
//
// Returns abiutils.ErrRecordAbsent when the response is empty or the decoded
// record is absent.
func DecodeFirst(abi *MvxAbi, target any, returnData []string, opts ...CallOption) error {
	if abi == nil {
		abi = GetGlobalMvxAbi()
	}

	if len(returnData) == 0 {
		return abiutils.ErrRecordAbsent
	}

	if err := abi.UnmarshalBase64(target, returnData[0], opts...); err != nil {
		return err
	}

	absent, err := abi.IsAbsent(target)
	if err != nil {
		return err
	}
	if absent {
		return abiutils.ErrRecordAbsent
	}

	return nil
}
