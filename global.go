// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package mvxabi

import "sync"

var (
	globalMvxAbi     *MvxAbi
	globalMvxAbiLock sync.Mutex
)

func GetGlobalMvxAbi() *MvxAbi {
	globalMvxAbiLock.Lock()
	defer globalMvxAbiLock.Unlock()

	if globalMvxAbi == nil {
		globalMvxAbi = NewMvxAbi(nil)
	}
	return globalMvxAbi
}

func SetGlobalSpecs(specs map[string]any) {
	globalMvxAbiLock.Lock()
	defer globalMvxAbiLock.Unlock()

	globalMvxAbi = NewMvxAbi(specs)
}
