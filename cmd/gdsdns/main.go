// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-acme/lego/challenge/dns01"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsavola/gdsdns"
)

const (
	challengePrefix            = "_acme-challenge."
	defaultPropagationSeconds  = 30
	propagationSecondsFlagName = "propagation-seconds"
)

var (
	verbose bool
	logger  = zap.NewNop()
	auth    *gdsdns.Authenticator
)

func main() {
	cmd := newRootCmd()
	err := cmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gdsdns",
		Short: "Fulfill ACME dns-01 challenges via Google Domains",
		Long: `gdsdns adds and removes ACME challenge TXT records using the ACME DNS API
of Google Domains.

The access token is read from the file given with --credentials, or from the
GOOGLE_DOMAINS_ACCESS_TOKEN environment variable.

The present and cleanup commands also accept the arguments passed by lego's
exec provider:

  gdsdns present _acme-challenge.www.example.com. VALUE

In the DOMAIN VALIDATION_NAME VALIDATION form, present waits for
--propagation-seconds (default 30) before returning.  In lego's form it
returns immediately unless the flag is given, since lego polls by itself.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l

			warnLog, err := zap.NewStdLogAt(logger.Named("gdsdns"), zapcore.WarnLevel)
			if err != nil {
				return err
			}

			var debugLog gdsdns.Logger
			if verbose {
				l, err := zap.NewStdLogAt(logger.Named("dnsapi"), zapcore.DebugLevel)
				if err != nil {
					return err
				}
				debugLog = l
			}

			auth.SetLoggers(zap.NewStdLog(logger.Named("gdsdns")), warnLog, debugLog)
			return nil
		},
	}

	auth = gdsdns.New(gdsdns.NewDefaultConfig())

	auth.AddParserArguments(root.PersistentFlags())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newPresentCmd(),
		newRotateCmd("cleanup", "Remove a challenge TXT record", auth.CleanUp),
		newZoneCmd(),
	)
	return root
}

type rotateFunc func(ctx context.Context, domain, validationName, validation string) error

func newRotateCmd(use, short string, f rotateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [DOMAIN] VALIDATION_NAME VALIDATION",
		Short: short,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, name, value := parseChallengeArgs(args)

			if err := auth.SetupCredentials(); err != nil {
				return err
			}

			logger.Debug("rotating challenge",
				zap.String("op", use),
				zap.String("domain", domain),
				zap.String("name", name))

			if err := f(cmd.Context(), domain, name, value); err != nil {
				logger.Error("rotation failed", zap.String("op", use), zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func newPresentCmd() *cobra.Command {
	var seconds int

	cmd := newRotateCmd("present", "Publish a challenge TXT record", auth.Present)
	rotate := cmd.RunE

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := rotate(cmd, args); err != nil {
			return err
		}

		explicit := cmd.Flags().Changed(propagationSecondsFlagName)
		return waitPropagation(cmd.Context(), propagationDelay(seconds, explicit, len(args)))
	}

	cmd.Flags().IntVar(&seconds, propagationSecondsFlagName, defaultPropagationSeconds, "seconds to wait for the record to propagate")
	return cmd
}

// propagationDelay is zero for lego's (FQDN, VALUE) form unless requested
// explicitly.
func propagationDelay(seconds int, explicit bool, numArgs int) time.Duration {
	if numArgs < 3 && !explicit {
		return 0
	}
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func waitPropagation(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	logger.Info("waiting for DNS propagation", zap.Duration("delay", d))

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()

	case <-t.C:
		return nil
	}
}

func newZoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zone DOMAIN",
		Short: "Print the zone selected for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("credentials") {
				if err := auth.SetupCredentials(); err != nil {
					return err
				}
			}

			zone, err := auth.ResolveZone(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), zone)
			return nil
		},
	}
}

// parseChallengeArgs accepts (domain, name, value) or lego's (fqdn, value).
func parseChallengeArgs(args []string) (domain, name, value string) {
	if len(args) == 3 {
		return args[0], args[1], args[2]
	}

	name = dns01.UnFqdn(args[0])
	domain = strings.TrimPrefix(name, challengePrefix)
	value = args[1]
	return
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}
