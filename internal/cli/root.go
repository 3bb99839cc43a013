/*
 * root.go, part of bbscore.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package cli implements the bbscore command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rmera/bbscore"
	"github.com/rmera/bbscore/config"
	"github.com/rmera/bbscore/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	DSSP       bool
}

// CLIContext carries the initialized configuration and logger through
// the command tree.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
	engine *bbscore.Engine
}

// Engine returns the engine for the configuration, building it the
// first time.
func (c *CLIContext) Engine() (*bbscore.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}
	opts, err := c.Config.Options(c.Logger.Named("engine"))
	if err != nil {
		return nil, err
	}
	if c.engine, err = bbscore.New(opts); err != nil {
		return nil, fmt.Errorf("building the engine: %w", err)
	}
	return c.engine, nil
}

type cliContextKey struct{}

// NewRootCommand creates the root command with the global flags and all
// the subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "bbscore",
		Short: "Protein backbone energies and secondary structure",
		Long: "bbscore scores protein backbone conformations with a reduced force field\n" +
			"(sterics, electrostatics, hydrogen bonds, backbone torsions), a Ramachandran\n" +
			"prior and secondary structure templates.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (YAML). BBSCORE_* environment variables override it")
	pf.StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.DSSP, "dssp", config.DefaultDSSP, "use DSSP hydrogen bond energies instead of the geometric ones")

	cmd.AddCommand(
		newLookupCmd(),
		newDihedralCmd(),
		newRamaCmd(),
		newClassifyCmd(),
		newScoreCmd(),
		newRamaPlotCmd(),
		newRamaBuildCmd(),
		newVersionCmd(),
	)
	return cmd
}

// persistentPreRun loads the configuration, applies the flags given
// explicitly on top of it, and builds the logger.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if cmd.Flags().Changed("dssp") {
		cfg.HBond.DSSP = opts.DSSP
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, &CLIContext{Config: cfg, Logger: logger}))
	return nil
}

// GetCLIContext extracts the CLIContext from a command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// engineFor returns the CLI context and the engine of cmd.
func engineFor(cmd *cobra.Command) (*CLIContext, *bbscore.Engine, error) {
	c, err := GetCLIContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	E, err := c.Engine()
	return c, E, err
}

// Execute runs the command line tool.
func Execute() error {
	root := NewRootCommand()
	cmd, err := root.ExecuteC()
	if err != nil {
		PrintError(cmd, err)
	}
	if c, cerr := GetCLIContext(cmd); cerr == nil {
		_ = c.Logger.Sync()
	}
	return err
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// openInput opens the file name, or returns the standard input of cmd
// if name is "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}

// FormatTable renders headers and rows as an aligned text table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			colWidths[i] = max(colWidths[i], len(row[i]))
		}
	}
	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(padRight(c, colWidths[i]))
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	sep := make([]string, len(colWidths))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
