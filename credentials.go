// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdsdns

import (
	"os"

	"github.com/spf13/viper"
)

// Accepted credentials file keys, in order of preference.  Keys outside of a
// section end up in viper's "default" section.
var (
	accessTokenKeys = []string{
		"access-token",
		"access_token",
		"dns_google_domains_access_token",
	}
	zoneKeys = []string{
		"zone",
		"dns_google_domains_zone",
	}
)

// Credentials from a certbot-style INI file:
//
//	dns_google_domains_access_token = abcdef
//	dns_google_domains_zone = example.com
type Credentials struct {
	AccessToken string
	Zone        string // Optional
}

// LoadCredentials parses an INI file.  The access token is not validated
// here.  A file readable by group or others is reported via warnLog, if not
// nil.
func LoadCredentials(filename string, warnLog Logger) (*Credentials, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, &ConfigurationError{Source: filename, Msg: "credentials file not accessible", Err: err}
	}
	if warnLog != nil && info.Mode().Perm()&0o077 != 0 {
		warnLog.Printf("unsafe permissions on credentials file %s: %v", filename, info.Mode().Perm())
	}

	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigurationError{Source: filename, Msg: "credentials file could not be parsed", Err: err}
	}

	return &Credentials{
		AccessToken: lookup(v, accessTokenKeys),
		Zone:        lookup(v, zoneKeys),
	}, nil
}

func lookup(v *viper.Viper, keys []string) string {
	for _, key := range keys {
		for _, name := range []string{key, "default." + key} {
			if s := v.GetString(name); s != "" {
				return s
			}
		}
	}
	return ""
}
