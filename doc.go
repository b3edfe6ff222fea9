// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package gdsdns fulfills ACME dns-01 challenges by publishing and retracting TXT
records via the ACME DNS API of Google Domains.  Each challenge costs two
requests to the "rotate challenges" endpoint: one adds the record before the
certificate authority looks it up, the other removes it afterwards.

The Authenticator type implements the add and remove operations, and the
Plugin interface expected by a certbot-style host.  Provider adapts it to
https://github.com/go-acme/lego, and Fulfill to
https://golang.org/x/crypto/acme.


Subpackages

The dns subpackage defines the wire types of the rotation API.

The dns/dnsapi subpackage implements the HTTP client of the rotation endpoint.
It makes a single attempt per call; a slow rotation retried blindly could race
the certificate authority's lookup.

The dns/dnszone subpackage selects the zone (registrable domain) for a
challenge record, based on explicit configuration or the public suffix list.


Zone selection

The zone is chosen in this order:

1. The --zone command-line flag.

2. The zone entry of the credentials file (or GOOGLE_DOMAINS_ZONE).

3. The public suffix plus one label of the domain being validated, e.g.
``example.co.uk'' for ``www.example.co.uk''.


Credentials

The access token is read from a certbot-style INI file:

	dns_google_domains_access_token = 0123456789abcdef
	dns_google_domains_zone = example.com

Or from the environment variables listed with NewDefaultConfig, e.g. when
the lego provider is created with NewDNSProvider:

	GOOGLE_DOMAINS_ACCESS_TOKEN=0123456789abcdef

The token is never written to logs.

*/
package gdsdns
