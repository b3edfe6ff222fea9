// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdsdns

import (
	"context"
	"net/http"

	"github.com/go-acme/lego/challenge/dns01"
	"github.com/spf13/pflag"

	"github.com/tsavola/gdsdns/dns"
	"github.com/tsavola/gdsdns/dns/dnsapi"
	"github.com/tsavola/gdsdns/dns/dnszone"
)

// Plugin is what a certificate management tool needs for driving dns-01
// challenges through a command-line plugin.
type Plugin interface {
	AddParserArguments(flags *pflag.FlagSet)
	SetupCredentials() error
	Present(ctx context.Context, domain, validationName, validation string) error
	CleanUp(ctx context.Context, domain, validationName, validation string) error
}

var _ Plugin = (*Authenticator)(nil)

// Authenticator publishes and retracts challenge records.  Each Present or
// CleanUp call makes one request.
//
// Configuration must not be changed while Present or CleanUp is in progress.
// Use one instance per in-flight domain if that can't be guaranteed.
type Authenticator struct {
	accessToken     string
	zone            string
	zoneFlag        string
	credentialsFile string
	suffixList      dnszone.SuffixList

	clientConfig dnsapi.Config
	client       *dnsapi.Client
	infoLog      Logger
	errorLog     Logger
}

// New authenticator.  The access token may be provided later via
// SetupCredentials.
func New(config *Config) *Authenticator {
	var c Config

	if config != nil {
		c = *config
	}

	if c.SuffixList == nil {
		c.SuffixList = dnszone.PublicSuffixList
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = dnsapi.DefaultTimeout
	}

	a := &Authenticator{
		accessToken: c.AccessToken,
		zone:        c.Zone,
		zoneFlag:    c.ZoneFlag,
		suffixList:  c.SuffixList,
		clientConfig: dnsapi.Config{
			BaseURL:    c.BaseURL,
			HTTPClient: &http.Client{Timeout: c.HTTPTimeout},
		},
	}
	a.SetLoggers(c.InfoLog, c.ErrorLog, c.DebugLog)
	return a
}

// SetLoggers replaces the loggers.  Nil infoLog or errorLog selects lego's
// logger; nil debugLog disables debug logging.
func (a *Authenticator) SetLoggers(infoLog, errorLog, debugLog Logger) {
	if infoLog == nil {
		infoLog = infoLogger{}
	}
	if errorLog == nil {
		errorLog = warnLogger{}
	}

	a.infoLog = infoLog
	a.errorLog = errorLog

	a.clientConfig.ErrorLog = errorLog
	a.clientConfig.DebugLog = debugLog
	a.client = dnsapi.NewClient(&a.clientConfig)
}

// NewAuthenticator is like New, but the access token is required.
func NewAuthenticator(config *Config) (*Authenticator, error) {
	a := New(config)
	if err := a.validate(""); err != nil {
		return nil, err
	}
	return a, nil
}

// AddParserArguments registers the --credentials and --zone flags.  They are
// consulted by SetupCredentials and ResolveZone.
func (a *Authenticator) AddParserArguments(flags *pflag.FlagSet) {
	flags.StringVar(&a.credentialsFile, "credentials", a.credentialsFile, "Google Domains credentials INI file")
	flags.StringVar(&a.zoneFlag, "zone", a.zoneFlag, "zone (base domain) under Google Domains, e.g. example.com when requesting for a.example.com")
}

// SetupCredentials loads the credentials file named by the --credentials
// flag.  Without the flag, the access token and zone already configured (or
// found in the environment) are used.
func (a *Authenticator) SetupCredentials() error {
	if a.credentialsFile == "" {
		if a.accessToken == "" || a.zone == "" {
			defaults := NewDefaultConfig()
			if a.accessToken == "" {
				a.accessToken = defaults.AccessToken
			}
			if a.zone == "" {
				a.zone = defaults.Zone
			}
		}
		return a.validate(EnvAccessToken)
	}

	creds, err := LoadCredentials(a.credentialsFile, a.errorLog)
	if err != nil {
		return &PluginError{Msg: "invalid credentials", Err: err}
	}

	a.accessToken = creds.AccessToken
	a.zone = creds.Zone
	return a.validate(a.credentialsFile)
}

func (a *Authenticator) validate(source string) error {
	if a.accessToken == "" {
		return &PluginError{
			Msg: "invalid credentials",
			Err: &ConfigurationError{
				Source: source,
				Msg:    "access token was not found in the configuration for Google Domains",
			},
		}
	}
	return nil
}

// ResolveZone selects the zone of domain according to configuration.
func (a *Authenticator) ResolveZone(domain string) (string, error) {
	zone, err := dnszone.ResolveZone(domain, a.zone, a.zoneFlag, a.suffixList)
	if err != nil {
		return "", &ConfigurationError{Msg: "zone could not be determined", Err: err}
	}
	return zone, nil
}

// Present adds a TXT record.  validationName is the fully qualified record
// name (e.g. "_acme-challenge.www.example.com") and validation its value.
func (a *Authenticator) Present(ctx context.Context, domain, validationName, validation string) error {
	return a.rotate(ctx, domain, &dns.RotationRequest{
		RecordsToAdd:       []dns.TxtRecord{newRecord(validationName, validation)},
		KeepExpiredRecords: false,
	})
}

// CleanUp removes a TXT record added by Present.  Records which are already
// gone are tolerated by the service.
func (a *Authenticator) CleanUp(ctx context.Context, domain, validationName, validation string) error {
	return a.rotate(ctx, domain, &dns.RotationRequest{
		RecordsToRemove:    []dns.TxtRecord{newRecord(validationName, validation)},
		KeepExpiredRecords: true,
	})
}

func (a *Authenticator) rotate(ctx context.Context, domain string, req *dns.RotationRequest) error {
	if err := a.validate(a.credentialsFile); err != nil {
		return err
	}

	zone, err := a.ResolveZone(domain)
	if err != nil {
		return rotateError(err)
	}

	a.infoLog.Printf("zone selected for %s: %s", domain, zone)

	for _, records := range [][]dns.TxtRecord{req.RecordsToAdd, req.RecordsToRemove} {
		for _, r := range records {
			if !dnszone.Contains(zone, r.FQDN) {
				a.errorLog.Printf("record %s is outside of zone %s", r.FQDN, zone)
			}
		}
	}

	req.AccessToken = a.accessToken

	if _, err := a.client.RotateChallenges(ctx, zone, req); err != nil {
		return rotateError(err)
	}
	return nil
}

func newRecord(validationName, validation string) dns.TxtRecord {
	return dns.TxtRecord{
		FQDN:   dns01.UnFqdn(validationName),
		Digest: validation,
	}
}
