// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package query

import (
	"fmt"
)

// HTTPError is returned for non 2xx responses.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// ReturnCodeError is returned when the contract call itself failed.
type ReturnCodeError struct {
	Function      string
	ReturnCode    string
	ReturnMessage string
}

func (e *ReturnCodeError) Error() string {
	return fmt.Sprintf("%s returned %s: %s", e.Function, e.ReturnCode, e.ReturnMessage)
}

// GatewayError is returned when the gateway envelope reports a failure.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned %s", e.Code)
	}
	return fmt.Sprintf("gateway returned %s: %s", e.Code, e.Message)
}
