// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdsdns

import (
	"context"
	"time"

	"github.com/go-acme/lego/challenge"
	"github.com/go-acme/lego/challenge/dns01"
)

var _ challenge.ProviderTimeout = (*Provider)(nil)

// Provider can solve ACME dns-01 challenges for lego.
type Provider struct {
	auth               *Authenticator
	propagationTimeout time.Duration
	pollingInterval    time.Duration
}

// NewDNSProvider is configured via environment variables; the access token is
// required.
func NewDNSProvider() (*Provider, error) {
	return NewDNSProviderConfig(NewDefaultConfig())
}

func NewDNSProviderConfig(config *Config) (*Provider, error) {
	auth, err := NewAuthenticator(config)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		auth:               auth,
		propagationTimeout: config.PropagationTimeout,
		pollingInterval:    config.PollingInterval,
	}
	if p.propagationTimeout <= 0 {
		p.propagationTimeout = defaultPropagationTimeout
	}
	if p.pollingInterval <= 0 {
		p.pollingInterval = dns01.DefaultPollingInterval
	}
	return p, nil
}

func (p *Provider) Present(domain, token, keyAuth string) error {
	fqdn, value := dns01.GetRecord(domain, keyAuth)
	return p.auth.Present(context.Background(), domain, fqdn, value)
}

func (p *Provider) CleanUp(domain, token, keyAuth string) error {
	fqdn, value := dns01.GetRecord(domain, keyAuth)
	return p.auth.CleanUp(context.Background(), domain, fqdn, value)
}

// Timeout for lego's propagation check.
func (p *Provider) Timeout() (timeout, interval time.Duration) {
	return p.propagationTimeout, p.pollingInterval
}
