// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package query

import (
	json "github.com/goccy/go-json"
)

// ReturnCodeOk is the return code of a successful contract call.
const ReturnCodeOk = "ok"

// Request is the body of a vm query.
type Request struct {
	ScAddress string   `json:"scAddress"`
	FuncName  string   `json:"funcName"`
	Args      []string `json:"args"`
}

// Response is the result of a vm query. ReturnData holds one base64 item per
// returned value.
type Response struct {
	ReturnData    []string `json:"returnData"`
	ReturnCode    string   `json:"returnCode"`
	ReturnMessage string   `json:"returnMessage,omitempty"`
}

// gatewayEnvelope is the wrapped response shape of the proxy gateway.
type gatewayEnvelope struct {
	Data *struct {
		Data *Response `json:"data"`
	} `json:"data"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

// gatewayCodeSuccessful is the envelope code of a successful gateway call.
const gatewayCodeSuccessful = "successful"

// ParseResponse decodes a vm query response. It accepts the api shape as
// well as the gateway shape. A failed gateway envelope is returned as
// *GatewayError.
func ParseResponse(body []byte) (*Response, error) {
	gateway := gatewayEnvelope{}
	if err := json.Unmarshal(body, &gateway); err == nil {
		if gateway.Error != "" || (gateway.Code != "" && gateway.Code != gatewayCodeSuccessful) {
			return nil, &GatewayError{Code: gateway.Code, Message: gateway.Error}
		}
		if gateway.Data != nil && gateway.Data.Data != nil {
			return normalizeResponse(gateway.Data.Data), nil
		}
	}

	response := &Response{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, err
	}

	return normalizeResponse(response), nil
}

func normalizeResponse(response *Response) *Response {
	if response.ReturnData == nil {
		response.ReturnData = []string{}
	}
	if response.ReturnCode == "" {
		response.ReturnCode = ReturnCodeOk
	}
	return response
}
