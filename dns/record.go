// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

// TxtRecord is an ACME challenge TXT record.  UpdateTime is set only by the
// remote service, and is passed through as is.
type TxtRecord struct {
	FQDN       string `json:"fqdn"`
	Digest     string `json:"digest"`
	UpdateTime string `json:"updateTime,omitempty"`
}

// RotationRequest adds and/or removes challenge records of a zone.  Empty
// record lists are left out of the JSON encoding.
type RotationRequest struct {
	AccessToken        string      `json:"accessToken"`
	RecordsToAdd       []TxtRecord `json:"recordsToAdd,omitempty"`
	RecordsToRemove    []TxtRecord `json:"recordsToRemove,omitempty"`
	KeepExpiredRecords bool        `json:"keepExpiredRecords"`
}

// Redacted copy without the access token.  Only the redacted form may be
// logged.
func (r *RotationRequest) Redacted() RotationRequest {
	c := *r
	c.AccessToken = ""
	return c
}

// ChallengeSet is the state of a zone's challenge records after rotation.
type ChallengeSet struct {
	Records []TxtRecord `json:"record"`
}

