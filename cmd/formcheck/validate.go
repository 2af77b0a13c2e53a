package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/formkit/internal/formspec"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/metrics"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

var errInvalidForm = errors.New("form is invalid")

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate the values of a form description against its rules",
		Description: `Build the widgets declared in a form description, run one validation pass
and print a YAML report to stdout.

Defaults come from the environment (VALIDATOR_MODE, VALIDATOR_LANGUAGE,
VALIDATOR_ASYNC_BUFFER); flags and the description's own mode override them.
Redis and Postgres lookups connect with REDIS_URL and PG_CONN_URL.

Examples:
  formcheck validate --spec signup.yaml
  formcheck validate -s signup.yaml --lang nb --mode immediate
  formcheck validate -s signup.yaml --till email --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "spec",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "path to the YAML form description",
			},
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "language of failure messages",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "evaluation mode (burst, immediate)",
			},
			&cli.StringFlag{
				Name:  "till",
				Usage: "validate ordered fields up to and including this one",
			},
			&cli.BoolFlag{
				Name:  "async",
				Usage: "run the pass in the background and deliver through a looper",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "upper bound for the whole pass",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "print Prometheus metrics to stderr after the report",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "exit with non-zero status when the form is invalid",
			},
		},
		Action: runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	var cfg validator.Config
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("failed to load validator config: %w", err)
	}
	if cmd.IsSet("mode") {
		if cfg.Mode, err = validator.ParseMode(cmd.String("mode")); err != nil {
			return err
		}
	}
	if cmd.IsSet("lang") {
		cfg.Language = cmd.String("lang")
	}

	path := cmd.String("spec")
	spec, err := formspec.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to load form description from %q: %w", path, err)
	}
	// An explicit flag beats the description.
	if spec.Mode != nil && !cmd.IsSet("mode") {
		cfg.Mode = *spec.Mode
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	backends, closeBackends, err := connectBackends(ctx, spec, log)
	if err != nil {
		return err
	}
	defer closeBackends()

	form, err := formspec.Build(spec, backends)
	if err != nil {
		return err
	}

	tr, err := validator.DefaultTranslator(ctx)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	lang := tr.Match(cfg.Language)

	reg := prometheus.NewRegistry()
	obs, err := metrics.NewObserver(reg)
	if err != nil {
		return err
	}

	rep := newReport(path, cfg.Mode, lang)
	opts := []validator.Option{
		validator.WithConfig(cfg),
		validator.WithLanguage(lang),
		validator.WithTranslator(tr),
		validator.WithLogger(log),
		validator.WithObserver(obs),
		validator.WithListener(rep),
		validator.WithValidatedAction(rep),
	}

	log.InfoContext(ctx, "validating form",
		slog.String("spec", path),
		logger.Mode(cfg.Mode.String()),
		logger.Count("fields", len(form.Fields)),
		slog.Bool("async", cmd.Bool("async")),
	)

	if cmd.Bool("async") {
		err = validateAsync(ctx, form, cfg, cmd.String("till"), rep, opts)
	} else {
		err = validateSync(ctx, form, cmd.String("till"), opts)
	}
	if err != nil {
		return err
	}

	out := rep.snapshot()
	if err := out.write(cmd.Root().Writer); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if cmd.Bool("metrics") {
		if err := writeMetrics(cmd, reg); err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "validation completed",
		slog.Bool("valid", out.Valid),
		logger.Count("failed", len(out.Errors)),
	)
	if cmd.Bool("fail-on-error") && !out.Valid {
		return fmt.Errorf("%w: %d field(s) failed", errInvalidForm, len(out.Errors))
	}
	return nil
}

func validateSync(ctx context.Context, form *formspec.Form, till string, opts []validator.Option) error {
	v, err := validator.New(form.Form, opts...)
	if err != nil {
		return err
	}
	if till != "" {
		return v.ValidateTill(ctx, till)
	}
	return v.Validate(ctx)
}

// validateAsync runs the pass in the background with a looper standing in for
// a UI thread, and waits until the report has been delivered.
func validateAsync(ctx context.Context, form *formspec.Form, cfg validator.Config, till string, rep *report, opts []validator.Option) error {
	looper := validator.NewLooper(cfg.AsyncBuffer)
	defer looper.Close()

	v, err := validator.New(form.Form, append(opts, validator.WithExecutor(looper))...)
	if err != nil {
		return err
	}

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() { _ = looper.Loop(loopCtx) }()

	if till != "" {
		err = v.ValidateTillAsync(ctx, till)
	} else {
		err = v.ValidateAsync(ctx)
	}
	if err != nil {
		return err
	}

	select {
	case <-rep.done:
		return nil
	case <-ctx.Done():
		v.CancelAsync()
		return ctx.Err()
	}
}

func writeMetrics(cmd *cli.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(cmd.Root().ErrWriter, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
