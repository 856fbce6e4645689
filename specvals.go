// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package mvxabi

import (
	"fmt"

	"github.com/casbin/govaluate"
)

type cachedSpecValue struct {
	resolved bool
	value    uint64
}

// ResolveSpecValue evaluates a dynabi-max expression against the spec values
// of this instance. Unknown identifiers leave the value unresolved.
func (d *MvxAbi) ResolveSpecValue(name string) (bool, uint64, error) {
	d.specMutex.Lock()
	defer d.specMutex.Unlock()

	if cachedValue := d.specValueCache[name]; cachedValue != nil {
		return cachedValue.resolved, cachedValue.value, nil
	}

	cachedValue := &cachedSpecValue{}
	expression, err := govaluate.NewEvaluableExpression(name)
	if err != nil {
		return false, 0, fmt.Errorf("error parsing dynamic spec expression: %v", err)
	}

	result, err := expression.Evaluate(d.specValues)
	if err == nil {
		value, ok := result.(float64)
		if ok && value >= 0 {
			cachedValue.resolved = true
			cachedValue.value = uint64(value)
			if float64(cachedValue.value) < value {
				// lengths are whole bytes, round up
				cachedValue.value++
			}
		}
	}

	d.specValueCache[name] = cachedValue
	return cachedValue.resolved, cachedValue.value, nil
}
