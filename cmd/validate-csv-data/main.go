// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/pexip/os-distro-info-data/distroinfo"
	"github.com/pexip/os-distro-info-data/distroinfo/csvcheck"
	"github.com/pexip/os-distro-info-data/private/process"
	"github.com/pexip/os-distro-info-data/private/version"
)

func main() {
	logger, _, _ := process.NewLogger("validate-csv-data")
	zap.ReplaceGlobals(logger)

	process.Exec(rootCommand(zap.L(), nil))
}

// rootCommand builds the validate-csv-data command. A nil validator
// selects the builtin schema checker; tests inject their own.
func rootCommand(log *zap.Logger, validator distroinfo.Validator) *cobra.Command {
	var debian, ubuntu bool
	var checkCfg csvcheck.Config

	cmd := &cobra.Command{
		Use:   "validate-csv-data [-h] -d|-u csv-file",
		Short: "Validate a distro-info-data release file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return process.UsageError.New("expected exactly one csv-file argument, got %d", len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&debian, "debian", "d", false, "validate a Debian CSV file")
	cmd.Flags().BoolVarP(&ubuntu, "ubuntu", "u", false, "validate an Ubuntu CSV file")
	process.Bind(cmd, &checkCfg)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if debian == ubuntu {
			return process.UsageError.New("You have to select exactly one of --debian, --ubuntu.")
		}

		distro := distroinfo.Debian
		if ubuntu {
			distro = distroinfo.Ubuntu
		}

		ctx, cancel := process.Ctx(cmd)
		defer cancel()

		if validator == nil {
			validator = csvcheck.New(log.Named("csvcheck"), checkCfg)
		}
		if !validator.Validate(ctx, args[0], distro) {
			return errs.New("%s is not a valid %s CSV file", args[0], distro)
		}
		return nil
	}

	cmd.AddCommand(versionCommand())
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Build)
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Println("Go version:", info.GoVersion)
			}
			return nil
		},
	}
}
