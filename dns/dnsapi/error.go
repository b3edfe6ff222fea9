// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dnsapi

import (
	"fmt"
)

// TransportError is returned when the request couldn't be completed or the
// service responded with a non-success status.  StatusCode is zero if no
// response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("dnsapi: request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("dnsapi: request to %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request was abandoned due to the client
// timeout.
func (e *TransportError) Timeout() bool {
	t, ok := e.Err.(interface{ Timeout() bool })
	return ok && t.Timeout()
}

// ParseError is returned when a successful response doesn't contain a
// challenge set.
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dnsapi: malformed challenge set: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
