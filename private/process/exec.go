// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package process wires cobra commands to process-wide configuration:
// environment and config-file propagation through viper, logger flags,
// debug endpoints, and exit-code mapping.
package process

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/pexip/os-distro-info-data/private/cfgstruct"
)

var (
	// Error is an error class for the package.
	Error = errs.Class("process")
	// UsageError marks errors caused by invalid command line usage.
	// Commands exit with status 2 instead of 1 on these.
	UsageError = errs.Class("usage error")

	configFile = flag.String("config", defaultConfigPath(""), "path to a yaml configuration file")

	contextMtx sync.Mutex
	contexts   = map[*cobra.Command]context.Context{}
)

func defaultConfigPath(name string) string {
	if name == "" {
		name = filepath.Base(os.Args[0])
	}
	path := filepath.Join(".distro-info", fmt.Sprintf("%s.yaml", name))
	home, err := homedir.Dir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path)
}

// Bind registers flags on the command for every field of the config
// struct.
func Bind(cmd *cobra.Command, config interface{}) {
	cfgstruct.Bind(cmd.Flags(), config)
}

// Ctx returns a context for the command that is canceled on SIGINT or
// SIGTERM.
func Ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	contextMtx.Lock()
	defer contextMtx.Unlock()

	ctx := contexts[cmd]
	if ctx == nil {
		ctx = context.Background()
		contexts[cmd] = ctx
	}

	ctx, cancel := context.WithCancel(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()

	return ctx, cancel
}

// Exec runs a cobra command. Flags registered on the standard library
// flag set are merged into the command, values from the environment
// and the optional config file are propagated into any flag the user
// left unchanged, and the returned error is mapped to the process exit
// status via ExitCode.
func Exec(cmd *cobra.Command) {
	cmd.Flags().AddGoFlagSet(flag.CommandLine)
	cleanup(cmd)

	executed, err := cmd.ExecuteC()
	if err == nil {
		return
	}

	if UsageError.Has(err) {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", executed.Name(), err)
		fmt.Fprint(os.Stderr, executed.UsageString())
	} else {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", executed.Name(), err)
	}
	os.Exit(ExitCode(err))
}

// ExitCode maps a command error to a process exit status: 0 for nil, 2
// for usage errors, and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case UsageError.Has(err):
		return 2
	default:
		return 1
	}
}

// Viper creates a viper instance bound to the command flags, the
// DISTRO_INFO_* environment, and the config file.
func Viper(cmd *cobra.Command) (*viper.Viper, error) {
	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return nil, Error.Wrap(err)
	}
	vip.SetEnvPrefix("distro_info")
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()

	if *configFile != "" {
		vip.SetConfigFile(*configFile)
		if err := vip.ReadInConfig(); err != nil {
			// the default config path is allowed to be absent
			if !errors.Is(err, fs.ErrNotExist) || configFileChanged() {
				return nil, Error.Wrap(err)
			}
		}
	}

	return vip, nil
}

func configFileChanged() bool {
	f := flag.Lookup("config")
	return f != nil && f.Value.String() != f.DefValue
}

func cleanup(cmd *cobra.Command) {
	for _, child := range cmd.Commands() {
		cleanup(child)
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return UsageError.Wrap(err)
	})

	internalRun := cmd.RunE
	if internalRun == nil {
		return
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		vip, err := Viper(cmd)
		if err != nil {
			return err
		}
		if err := propagate(cmd, vip); err != nil {
			return err
		}

		logger, _, err := NewLogger(cmd.Root().Name())
		if err != nil {
			return Error.Wrap(err)
		}
		defer func() { _ = logger.Sync() }()
		defer zap.ReplaceGlobals(logger)()
		defer zap.RedirectStdLog(logger)()

		if err := initDebug(logger.Named("debug"), monkit.Default); err != nil {
			logger.Error("failed to start debug endpoints", zap.Error(err))
		}

		return internalRun(cmd, args)
	}
}

// propagate copies viper settings into every flag the user did not set
// explicitly on the command line.
func propagate(cmd *cobra.Command, vip *viper.Viper) error {
	settings := flattenSettings("", vip.AllSettings())

	var group errs.Group
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		value, ok := settings[f.Name]
		if !ok {
			return
		}
		str := fmt.Sprintf("%v", value)
		if str == f.Value.String() {
			return
		}
		if err := cmd.Flags().Set(f.Name, str); err != nil {
			group.Add(Error.New("invalid setting for %q: %v", f.Name, err))
		}
	})
	return group.Err()
}

func flattenSettings(prefix string, settings map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{}, len(settings))
	for key, value := range settings {
		if nested, ok := value.(map[string]interface{}); ok {
			for nkey, nvalue := range flattenSettings(prefix+key+".", nested) {
				flat[nkey] = nvalue
			}
			continue
		}
		flat[prefix+key] = value
	}
	return flat
}
