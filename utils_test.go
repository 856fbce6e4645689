// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package mvxabi_test

import "github.com/pk910/mvx-abi/abiutils"

func fromHex(data string) []byte {
	return abiutils.FromHex(data)
}
