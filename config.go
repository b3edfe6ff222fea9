// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdsdns

import (
	"time"

	"github.com/go-acme/lego/challenge/dns01"
	"github.com/go-acme/lego/platform/config/env"

	"github.com/tsavola/gdsdns/dns/dnsapi"
	"github.com/tsavola/gdsdns/dns/dnszone"
)

// Environment variables read by NewDefaultConfig and SetupCredentials.
const (
	EnvAccessToken        = "GOOGLE_DOMAINS_ACCESS_TOKEN"
	EnvZone               = "GOOGLE_DOMAINS_ZONE"
	EnvPropagationTimeout = "GOOGLE_DOMAINS_PROPAGATION_TIMEOUT"
	EnvPollingInterval    = "GOOGLE_DOMAINS_POLLING_INTERVAL"
	EnvHTTPTimeout        = "GOOGLE_DOMAINS_HTTP_TIMEOUT"
)

const defaultPropagationTimeout = 2 * time.Minute

type Config struct {
	AccessToken string
	Zone        string // Credentials-provided zone
	ZoneFlag    string // Command-line zone; overrides Zone

	BaseURL     string        // Defaults to dnsapi.DefaultBaseURL
	HTTPTimeout time.Duration // Defaults to dnsapi.DefaultTimeout

	PropagationTimeout time.Duration
	PollingInterval    time.Duration

	// Defaults to dnszone.PublicSuffixList.  Load once, share everywhere.
	SuffixList dnszone.SuffixList

	InfoLog  Logger // Defaults to lego's logger
	ErrorLog Logger // Defaults to lego's logger
	DebugLog Logger // Defaults to nothingness
}

// NewDefaultConfig reads optional settings from the environment.  The access
// token is not required at this point.
func NewDefaultConfig() *Config {
	return &Config{
		AccessToken:        env.GetOrFile(EnvAccessToken),
		Zone:               env.GetOrFile(EnvZone),
		HTTPTimeout:        env.GetOrDefaultSecond(EnvHTTPTimeout, dnsapi.DefaultTimeout),
		PropagationTimeout: env.GetOrDefaultSecond(EnvPropagationTimeout, defaultPropagationTimeout),
		PollingInterval:    env.GetOrDefaultSecond(EnvPollingInterval, dns01.DefaultPollingInterval),
	}
}
