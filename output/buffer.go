/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package output collects the rendered response of one query: payload
// buffer, response code, and the optional fixed16 framing header.
package output

import (
	"bytes"
	"fmt"
)

// ResponseCode is the status delivered in the fixed16 header.
type ResponseCode int

const (
	CodeOK              ResponseCode = 200
	CodeBadRequest      ResponseCode = 400
	CodeNotFound        ResponseCode = 404
	CodePayloadTooLarge ResponseCode = 413
	CodeInternalError   ResponseCode = 500
)

// ResponseHeaderMode selects the response framing.
type ResponseHeaderMode int

const (
	// ResponseHeaderOff sends the bare payload.
	ResponseHeaderOff ResponseHeaderMode = iota
	// ResponseHeaderFixed16 prefixes a 16-byte header with status code
	// and payload length.
	ResponseHeaderFixed16
)

// Buffer accumulates the response of one query. A recorded error replaces
// the payload; only the first error is kept.
type Buffer struct {
	payload        bytes.Buffer
	responseHeader ResponseHeaderMode
	code           ResponseCode
	errMsg         string
}

// NewBuffer creates an empty response buffer.
func NewBuffer() *Buffer {
	return &Buffer{code: CodeOK}
}

// SetError records an error condition. Later errors do not overwrite an
// earlier one, matching the first-error-wins behavior of the protocol.
func (b *Buffer) SetError(code ResponseCode, format string, args ...any) {
	if b.errMsg != "" {
		return
	}
	b.code = code
	b.errMsg = fmt.Sprintf(format, args...)
}

// HasError reports whether an error has been recorded.
func (b *Buffer) HasError() bool { return b.errMsg != "" }

// ErrorMessage returns the recorded error, or "".
func (b *Buffer) ErrorMessage() string { return b.errMsg }

// Code returns the response status code.
func (b *Buffer) Code() ResponseCode { return b.code }

// SetResponseHeader selects the framing emitted by Finish.
func (b *Buffer) SetResponseHeader(mode ResponseHeaderMode) {
	b.responseHeader = mode
}

// Write appends payload bytes; it never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.payload.Write(p)
}

// WriteString appends a payload string.
func (b *Buffer) WriteString(s string) {
	b.payload.WriteString(s)
}

// Payload returns the current payload without framing.
func (b *Buffer) Payload() []byte {
	if b.errMsg != "" {
		return []byte(b.errMsg + "\n")
	}
	return b.payload.Bytes()
}

// Finish assembles the final response. With fixed16 framing the payload
// is preceded by a 16-byte ASCII header carrying status code and payload
// byte count.
func (b *Buffer) Finish() []byte {
	payload := b.Payload()
	if b.responseHeader == ResponseHeaderFixed16 {
		header := fmt.Sprintf("%3d %11d\n", b.code, len(payload))
		return append([]byte(header), payload...)
	}
	return payload
}
