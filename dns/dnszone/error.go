// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dnszone

import (
	"net"
)

const (
	// Try to be informative without being misleading in an unexpected context.
	resolver = "gdsdns/dns/dnszone"
)

// ResolutionError is returned when a zone can't be determined for a domain.
// It is a configuration problem: retrying won't help.
type ResolutionError struct {
	net.DNSError
	Err error // Underlying suffix list error, if any
}

func (*ResolutionError) NotExist() bool {
	return true
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func newNameError(name string) error {
	return &ResolutionError{
		DNSError: net.DNSError{
			Err:    "Invalid domain name",
			Name:   name,
			Server: resolver,
		},
	}
}

func newSuffixError(name string, err error) error {
	return &ResolutionError{
		DNSError: net.DNSError{
			Err:    "Domain is not under a registrable public suffix",
			Name:   name,
			Server: resolver,
		},
		Err: err,
	}
}
