// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dnszone selects the zone under which challenge records are managed.
//
// See the top-level package for general documentation.
package dnszone

import (
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/publicsuffix"
)

// SuffixList knows the registrable domains of the public suffix database.
// Implementations must be safe for concurrent use.
type SuffixList interface {
	EffectiveTLDPlusOne(domain string) (string, error)
}

type publicSuffixList struct{}

func (publicSuffixList) EffectiveTLDPlusOne(domain string) (string, error) {
	return publicsuffix.EffectiveTLDPlusOne(domain)
}

// PublicSuffixList is the compiled-in database of golang.org/x/net/publicsuffix.
var PublicSuffixList SuffixList = publicSuffixList{}

// ResolveZone chooses the zone of domain.  A non-empty fromFlag always wins,
// then a non-empty fromCredentials.  Otherwise the registrable domain (public
// suffix plus one label) is derived from domain using list, which defaults to
// PublicSuffixList if nil.
//
// The returned error is a *ResolutionError.
func ResolveZone(domain, fromCredentials, fromFlag string, list SuffixList) (zone string, err error) {
	switch {
	case fromFlag != "":
		zone = fromFlag
		return

	case fromCredentials != "":
		zone = fromCredentials
		return
	}

	if list == nil {
		list = PublicSuffixList
	}

	name := Normalize(domain)
	if name == "" {
		err = newNameError(domain)
		return
	}
	if _, ok := dns.IsDomainName(name); !ok {
		err = newNameError(domain)
		return
	}

	zone, err = list.EffectiveTLDPlusOne(name)
	if err != nil {
		err = newSuffixError(domain, err)
		zone = ""
	}
	return
}

// Normalize strips the wildcard label and the root dot, and folds case.
// "*.Example.COM." becomes "example.com".
func Normalize(domain string) string {
	name := strings.ToLower(strings.TrimSpace(domain))
	name = strings.TrimPrefix(name, "*.")
	return strings.TrimSuffix(name, ".")
}

// Contains reports whether name is the zone apex or a name below it.
func Contains(zone, name string) bool {
	return dns.IsSubDomain(dns.Fqdn(Normalize(zone)), dns.Fqdn(Normalize(name)))
}
