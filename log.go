// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdsdns

import (
	"github.com/go-acme/lego/log"
)

// Logger is a subset of log.Logger.
type Logger interface {
	Printf(fmt string, args ...interface{})
}

type infoLogger struct{}

func (infoLogger) Printf(fmt string, args ...interface{}) {
	log.Infof("gdsdns: "+fmt, args...)
}

type warnLogger struct{}

func (warnLogger) Printf(fmt string, args ...interface{}) {
	log.Warnf("gdsdns: "+fmt, args...)
}
