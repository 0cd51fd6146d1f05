package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/K0NGR3SS/critfindings/internal/aws"
	"github.com/K0NGR3SS/critfindings/internal/config"
	"github.com/K0NGR3SS/critfindings/internal/notifications"
	"github.com/K0NGR3SS/critfindings/internal/report"
	"github.com/K0NGR3SS/critfindings/internal/shiftleft"
	"github.com/K0NGR3SS/critfindings/internal/ui"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

func runReport(ctx context.Context, opts *options, appName string) error {
	logger := opts.logger

	cfg, err := config.Load(opts.getenv, opts.cfgFile)
	if err != nil {
		return err
	}
	if opts.output != "" {
		override := *cfg
		override.OutputFormat = opts.output
		if err := override.Validate(); err != nil {
			return err
		}
		cfg = &override
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if aws.IsSecretReference(cfg.Token) {
		secrets, err := opts.newSecrets(ctx, cfg.AWSRegion)
		if err != nil {
			return fmt.Errorf("failed to initialize AWS client: %w", err)
		}
		token, err := secrets.ResolveSecret(ctx, cfg.Token)
		if err != nil {
			return err
		}
		cfg = cfg.WithToken(token)
		logger.Debug("resolved API token from SSM")
	}

	client := shiftleft.NewClient(cfg, logger)

	var spinner *pterm.SpinnerPrinter
	if opts.interactive {
		spinner = ui.StartSpinner(opts.stderr, fmt.Sprintf("Looking up application %s...", appName))
	}
	appID, err := client.GetApplicationID(ctx, appName)
	if err != nil {
		ui.StopSpinner(spinner)
		return err
	}

	ui.UpdateSpinner(spinner, fmt.Sprintf("Fetching critical findings for %s...", appID))
	page, err := client.GetCriticalFindings(ctx, appID)
	ui.StopSpinner(spinner)
	if err != nil {
		return err
	}

	if page.Truncated {
		fmt.Fprintln(opts.stdout, report.TruncatedWarning)
	}

	entries := report.Build(page.Findings)
	if err := report.Render(opts.stdout, cfg.OutputFormat, entries); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Slack.WebhookURL != "" {
		notifier := notifications.NewSlackNotifier(cfg.Slack.WebhookURL, cfg.Slack.Channel)
		if err := notifier.SendReport(ctx, appName, entries, page.Truncated); err != nil {
			logger.Warn("failed to send slack notification", zap.Error(err))
		}
	}

	return nil
}
