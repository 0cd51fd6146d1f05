package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/K0NGR3SS/critfindings/internal/aws"
	"github.com/K0NGR3SS/critfindings/internal/logging"
	"github.com/K0NGR3SS/critfindings/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errUsage = errors.New("missing application name")

type secretResolver interface {
	ResolveSecret(ctx context.Context, ref string) (string, error)
}

type options struct {
	getenv      func(string) string
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
	newSecrets  func(ctx context.Context, region string) (secretResolver, error)

	cfgFile string
	output  string
	debug   bool
	logger  *zap.Logger
}

func defaultOptions() *options {
	return &options{
		getenv:      os.Getenv,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: ui.Interactive(os.Stderr),
		newSecrets: func(ctx context.Context, region string) (secretResolver, error) {
			return aws.NewClient(ctx, region)
		},
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "critfindings <app_name>",
		Short: "critfindings lists the critical findings of a ShiftLeft application",
		Long: `critfindings resolves a ShiftLeft application by name and prints its critical severity findings, sorted by id.

Requires SHIFTLEFT_API_TOKEN and SHIFTLEFT_ORG_ID in the environment. The token may be given
as ssm:<parameter-name> to read it from AWS SSM Parameter Store.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "usage: %s <app_name>\n", cmd.Name())
				return errUsage
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = logging.New(cmd.ErrOrStderr(), opts.debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, args[0])
		},
	}

	cmd.SetOut(opts.stdout)
	cmd.SetErr(opts.stderr)
	cmd.SetVersionTemplate(versionTemplate)

	cmd.Flags().StringVarP(&opts.cfgFile, "config", "c", "", "optional settings file (YAML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output format: text, table, json or csv (default text)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")

	return cmd
}

func execute(ctx context.Context, opts *options, args []string) error {
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || errors.Is(err, errUsage) {
		return err
	}

	if opts.logger != nil {
		opts.logger.Error("command failed", zap.Error(err))
		_ = opts.logger.Sync()
	} else {
		fmt.Fprintln(opts.stderr, "Error:", err)
	}
	return err
}

func Execute() {
	opts := defaultOptions()
	if opts.interactive {
		ui.PrintBanner(opts.stderr, Version)
	}

	if err := execute(context.Background(), opts, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
