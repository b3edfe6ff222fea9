// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dnsapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tsavola/gdsdns/dns"
	"github.com/tsavola/gdsdns/dns/dnsapi"
)

const secret = "very-secret-access-token"

func newClient(t *testing.T, handler http.HandlerFunc) (*dnsapi.Client, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logs := new(bytes.Buffer)
	logger := log.New(logs, "", 0)

	client := dnsapi.NewClient(&dnsapi.Config{
		BaseURL:  srv.URL + "/v1/",
		ErrorLog: logger,
		DebugLog: logger,
	})
	return client, logs
}

func addRequest() *dns.RotationRequest {
	return &dns.RotationRequest{
		AccessToken:  secret,
		RecordsToAdd: []dns.TxtRecord{{FQDN: "_acme-challenge.example.com", Digest: "digest1"}},
	}
}

func TestRotateChallenges(t *testing.T) {
	var received map[string]json.RawMessage

	client, logs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: %s", r.Method)
		}
		if r.URL.Path != "/v1/acmeChallengeSets/example.com:rotateChallenges" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
			t.Errorf("content type: %s", ct)
		}

		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("request body: %v", err)
		}

		io.WriteString(w, `{"record":[{"fqdn":"_acme-challenge.example.com","digest":"digest1","updateTime":"2023-05-01T12:00:00Z"}]}`)
	})

	set, err := client.RotateChallenges(context.Background(), "example.com", addRequest())
	if err != nil {
		t.Fatal(err)
	}

	if len(set.Records) != 1 {
		t.Fatalf("records: %v", set.Records)
	}
	r := set.Records[0]
	if r.FQDN != "_acme-challenge.example.com" || r.Digest != "digest1" {
		t.Errorf("record: %+v", r)
	}
	if r.UpdateTime != "2023-05-01T12:00:00Z" {
		t.Errorf("update time: %q", r.UpdateTime)
	}

	if string(received["accessToken"]) != `"`+secret+`"` {
		t.Errorf("access token: %s", received["accessToken"])
	}
	if _, found := received["recordsToRemove"]; found {
		t.Error("recordsToRemove sent")
	}
	if string(received["keepExpiredRecords"]) != "false" {
		t.Errorf("keepExpiredRecords: %s", received["keepExpiredRecords"])
	}

	if !strings.Contains(logs.String(), "digest1") {
		t.Errorf("exchange not logged: %q", logs.String())
	}
	if strings.Contains(logs.String(), secret) {
		t.Errorf("token logged: %q", logs.String())
	}
}

func TestRotateChallengesStatusError(t *testing.T) {
	client, logs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"code":500,"message":"backend failure"}}`)
	})

	req := addRequest()

	set, err := client.RotateChallenges(context.Background(), "example.com", req)
	if err == nil {
		t.Fatalf("no error: %v", set)
	}

	var transportErr *dnsapi.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("%T: %v", err, err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: %d", transportErr.StatusCode)
	}
	if !strings.Contains(transportErr.Body, "backend failure") {
		t.Errorf("body: %q", transportErr.Body)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("message: %v", err)
	}

	var parseErr *dnsapi.ParseError
	if errors.As(err, &parseErr) {
		t.Error("status error is a parse error")
	}

	if strings.Contains(logs.String(), secret) {
		t.Errorf("token logged: %q", logs.String())
	}
	if req.AccessToken != secret {
		t.Error("request modified")
	}
}

func TestRotateChallengesParseError(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"record": [`)
	})

	_, err := client.RotateChallenges(context.Background(), "example.com", addRequest())

	var parseErr *dnsapi.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("%T: %v", err, err)
	}

	var transportErr *dnsapi.TransportError
	if errors.As(err, &transportErr) {
		t.Error("parse error is a transport error")
	}
}

func TestRotateChallengesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/v1/"
	srv.Close()

	client := dnsapi.NewClient(&dnsapi.Config{BaseURL: baseURL})

	_, err := client.RotateChallenges(context.Background(), "example.com", addRequest())

	var transportErr *dnsapi.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("%T: %v", err, err)
	}
	if transportErr.StatusCode != 0 {
		t.Errorf("status: %d", transportErr.StatusCode)
	}
}

func TestRotateChallengesTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := dnsapi.NewClient(&dnsapi.Config{
		BaseURL:    srv.URL + "/v1/",
		HTTPClient: &http.Client{Timeout: 50 * time.Millisecond},
	})

	_, err := client.RotateChallenges(context.Background(), "example.com", addRequest())

	var transportErr *dnsapi.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("%T: %v", err, err)
	}
	if !transportErr.Timeout() {
		t.Errorf("not a timeout: %v", err)
	}
}

func TestRotateChallengesInvalidArguments(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent")
	})

	if _, err := client.RotateChallenges(context.Background(), "", addRequest()); err == nil {
		t.Error("empty zone accepted")
	}

	req := addRequest()
	req.AccessToken = ""
	if _, err := client.RotateChallenges(context.Background(), "example.com", req); err == nil {
		t.Error("empty token accepted")
	}
}
