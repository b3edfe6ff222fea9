// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdsdns

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/acme"

	"github.com/tsavola/gdsdns/dns/dnsapi"
)

const (
	challengeType = "dns-01"
	challengeNode = "_acme-challenge"
)

// Fulfill an authorization of an order using golang.org/x/crypto/acme.  The
// challenge record is removed before returning, also on failure.
func Fulfill(ctx context.Context, client *acme.Client, authzURL string, auth *Authenticator) error {
	authz, err := client.GetAuthorization(ctx, authzURL)
	if err != nil {
		return err
	}

	switch authz.Status {
	case acme.StatusValid:
		return nil

	case acme.StatusInvalid:
		return fmt.Errorf("gdsdns: invalid authorization %q", authz.URI)
	}

	chal, err := selectChallenge(authz)
	if err != nil {
		return err
	}

	value, err := client.DNS01ChallengeRecord(chal.Token)
	if err != nil {
		return err
	}

	domain := authz.Identifier.Value
	name := challengeName(domain)

	if err := auth.Present(ctx, domain, name, value); err != nil {
		return err
	}
	defer func() {
		// The record must go even if ctx is already done.
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dnsapi.DefaultTimeout)
		defer cancel()

		// Cleanup failure doesn't invalidate the authorization.
		if err := auth.CleanUp(cleanupCtx, domain, name, value); err != nil {
			auth.errorLog.Printf("%v", err)
		}
	}()

	if _, err := client.Accept(ctx, chal); err != nil {
		return err
	}

	_, err = client.WaitAuthorization(ctx, authz.URI)
	return err
}

func selectChallenge(authz *acme.Authorization) (*acme.Challenge, error) {
	for _, chal := range authz.Challenges {
		if chal.Type == challengeType {
			return chal, nil
		}
	}
	return nil, errors.New("gdsdns: no dns-01 challenge offered")
}

func challengeName(domain string) string {
	return challengeNode + "." + domain
}
