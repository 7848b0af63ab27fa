// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package process

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/errs"
)

func TestExec_PropagatesSettings(t *testing.T) {
	// Set up a command that does nothing.
	ran := false
	cmd := &cobra.Command{
		Use:  "testcmd",
		RunE: func(cmd *cobra.Command, args []string) error { ran = true; return nil },
	}

	// Define a config struct and a plain flag.
	var config struct {
		MaxProblems int `default:"0"`
	}
	Bind(cmd, &config)
	y := cmd.Flags().Int("y", 0, "y flag")

	// Set some environment variables for viper.
	t.Setenv("DISTRO_INFO_MAX_PROBLEMS", "7")
	t.Setenv("DISTRO_INFO_Y", "2")

	// Run the command through the cleanup wrapper.
	cleanup(cmd)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.True(t, ran)

	// Check that the variables are now bound.
	require.Equal(t, 7, config.MaxProblems)
	require.Equal(t, 2, *y)
}

func TestExec_CommandLineWins(t *testing.T) {
	cmd := &cobra.Command{
		Use:  "testcmd",
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var config struct {
		Label string `default:"none"`
	}
	Bind(cmd, &config)

	t.Setenv("DISTRO_INFO_LABEL", "from-env")

	cleanup(cmd)
	cmd.SetArgs([]string{"--label", "from-args"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "from-args", config.Label)
}

func TestExec_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("label: from-file\n"), 0644))

	previous := *configFile
	require.NoError(t, flag.Set("config", path))
	defer func() { require.NoError(t, flag.Set("config", previous)) }()

	cmd := &cobra.Command{
		Use:  "testcmd",
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var config struct {
		Label string `default:"none"`
	}
	Bind(cmd, &config)

	cleanup(cmd)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "from-file", config.Label)
}

func TestExec_MissingExplicitConfigFile(t *testing.T) {
	previous := *configFile
	require.NoError(t, flag.Set("config", filepath.Join(t.TempDir(), "nope.yaml")))
	defer func() { require.NoError(t, flag.Set("config", previous)) }()

	cmd := &cobra.Command{
		Use:  "testcmd",
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cleanup(cmd)
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}

func TestExec_FlagErrorsAreUsageErrors(t *testing.T) {
	cmd := &cobra.Command{
		Use:  "testcmd",
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cleanup(cmd)
	cmd.SetArgs([]string{"--bogus"})
	err := cmd.Execute()
	require.Error(t, err)
	require.True(t, UsageError.Has(err))
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 1, ExitCode(errs.New("boom")))
	require.Equal(t, 2, ExitCode(UsageError.New("bad usage")))
	require.Equal(t, 2, ExitCode(UsageError.Wrap(errs.New("wrapped"))))
}
