// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dnszone_test

import (
	"errors"
	"testing"

	"github.com/tsavola/gdsdns/dns/dnszone"
)

type staticList map[string]string

func (l staticList) EffectiveTLDPlusOne(domain string) (string, error) {
	if zone, found := l[domain]; found {
		return zone, nil
	}
	return "", errors.New("not listed")
}

func TestResolveZone(t *testing.T) {
	for _, c := range []struct {
		domain     string
		fromConfig string
		fromFlag   string
		zone       string
	}{
		{"example.com", "config_zone", "cli_zone", "cli_zone"},
		{"example.com", "", "cli_zone", "cli_zone"},
		{"not a domain", "config_zone", "cli_zone", "cli_zone"},
		{"example.com", "config_zone", "", "config_zone"},
		{"subdomain.example.com", "", "", "example.com"},
		{"example.com", "", "", "example.com"},
		{"_acme-challenge.a.b.example.co.uk", "", "", "example.co.uk"},
		{"*.Example.ORG.", "", "", "example.org"},
	} {
		zone, err := dnszone.ResolveZone(c.domain, c.fromConfig, c.fromFlag, dnszone.PublicSuffixList)
		if err != nil {
			t.Errorf("%q: %v", c.domain, err)
			continue
		}
		if zone != c.zone {
			t.Errorf("%q: zone %q, expected %q", c.domain, zone, c.zone)
		}
	}
}

func TestResolveZoneDefaultList(t *testing.T) {
	zone, err := dnszone.ResolveZone("www.example.net", "", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if zone != "example.net" {
		t.Error(zone)
	}
}

func TestResolveZoneInjectedList(t *testing.T) {
	list := staticList{"host.internal.test": "internal.test"}

	zone, err := dnszone.ResolveZone("host.internal.test", "", "", list)
	if err != nil {
		t.Fatal(err)
	}
	if zone != "internal.test" {
		t.Error(zone)
	}

	if _, err := dnszone.ResolveZone("other.test", "", "", list); err == nil {
		t.Error("unlisted domain resolved")
	}
}

func TestResolveZoneError(t *testing.T) {
	for _, domain := range []string{"", "com", "co.uk", "bad..name"} {
		zone, err := dnszone.ResolveZone(domain, "", "", dnszone.PublicSuffixList)
		if err == nil {
			t.Errorf("%q: zone %q", domain, zone)
			continue
		}

		var resErr *dnszone.ResolutionError
		if !errors.As(err, &resErr) {
			t.Errorf("%q: %T", domain, err)
		}
		if zone != "" {
			t.Errorf("%q: zone %q with error", domain, zone)
		}
	}
}

func TestContains(t *testing.T) {
	for _, c := range []struct {
		zone string
		name string
		ok   bool
	}{
		{"example.com", "_acme-challenge.example.com", true},
		{"example.com", "_acme-challenge.www.example.com.", true},
		{"example.com", "example.com", true},
		{"example.com", "_acme-challenge.example.org", false},
		{"example.com", "notexample.com", false},
	} {
		if ok := dnszone.Contains(c.zone, c.name); ok != c.ok {
			t.Errorf("%q in %q: %v", c.name, c.zone, ok)
		}
	}
}
