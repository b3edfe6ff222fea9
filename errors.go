// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdsdns

const rotateFailure = "unable to rotate DNS challenges"

// PluginError is the only error type returned by Authenticator methods.  The
// cause is available via errors.As or errors.Unwrap.
type PluginError struct {
	Msg string
	Err error
}

func (e *PluginError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

// ConfigurationError means that the setup is unusable: credentials are
// missing, or a zone couldn't be determined.  Retrying won't help.
type ConfigurationError struct {
	Source string // File name or other origin; may be empty
	Msg    string
	Err    error
}

func (e *ConfigurationError) Error() string {
	s := e.Msg
	if e.Source != "" {
		s = e.Source + ": " + s
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func rotateError(err error) error {
	return &PluginError{Msg: rotateFailure, Err: err}
}
