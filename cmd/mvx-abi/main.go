// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

// Command mvx-abi decodes MultiversX smart contract responses and queries
// the festival ticketing contract.
package main

func main() {
	Execute()
}
