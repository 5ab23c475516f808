// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sanbir/WebApp/internal/catalog"
	"github.com/sanbir/WebApp/internal/config"
	catalogerrors "github.com/sanbir/WebApp/internal/errors"
	"github.com/sanbir/WebApp/internal/logger"
	"github.com/sanbir/WebApp/internal/output"
	"github.com/sanbir/WebApp/pkg/version"
)

// clientFactory builds the catalog client once configuration is resolved.
// Tests substitute one that returns a mock.
type clientFactory func(cfg *config.Config, logger zerolog.Logger) catalog.Client

func newDataClient(cfg *config.Config, logger zerolog.Logger) catalog.Client {
	fetcher := catalog.NewHTTPFetcher(catalog.FetcherOptions{
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, logger)
	return catalog.New(cfg.API.BaseURL, catalog.WithFetcher(fetcher), catalog.WithLogger(logger))
}

type globalOptions struct {
	configPath string
	baseURL    string
	outputFile string
	format     string
	logLevel   string
}

// app holds what every subcommand needs after the root pre-run.
type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	client     catalog.Client
	outputFile string
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCommand(factory clientFactory, stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "purdueio",
		Short: "Browse Purdue's course catalog and your class schedule",
		Long: `purdueio queries a Purdue.io catalog service for terms, subjects, courses,
sections and enrollment statistics, and fetches the signed-in student's
schedule.

Results are written as NDJSON (one record per line) to stdout or --output.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // main prints the error and picks the exit code
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(opts, factory)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file path (default: .purdueio.yaml or ~/.purdueio/config.yaml)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Catalog service URL (overrides config and PURDUEIO_API_URL)")
	flags.StringVar(&opts.outputFile, "output", "", "Output file path (default: stdout)")
	flags.StringVar(&opts.format, "format", "", "Output format: ndjson or json")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")

	rootCmd.AddCommand(
		newAuthCommand(a),
		newScheduleCommand(a),
		newTermsCommand(a),
		newSubjectsCommand(a),
		newCoursesCommand(a),
		newCourseCommand(a),
		newCountsCommand(a),
	)

	return rootCmd
}

// setup resolves configuration (file, environment, then flags), validates
// it, and builds the logger and client.
func (a *app) setup(opts *globalOptions, factory clientFactory) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", catalogerrors.ErrInvalidConfig, err)
	}

	if opts.baseURL != "" {
		cfg.API.BaseURL = config.NormalizeBaseURL(opts.baseURL)
	}
	if opts.format != "" {
		cfg.Defaults.OutputFormat = strings.ToLower(opts.format)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.logLevel)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.outputFile = opts.outputFile
	a.logger = logger.New(cfg.Log, a.stderr)
	a.client = factory(cfg, a.logger)

	a.logger.Debug().
		Str("base_url", cfg.API.BaseURL).
		Dur("timeout", cfg.API.Timeout).
		Float64("rate_limit", cfg.RateLimit.RequestsPerSecond).
		Msg("configuration loaded")
	return nil
}

// openWriter returns the record writer for this run. The caller must close it.
func (a *app) openWriter() (output.OutputWriter, error) {
	if a.outputFile == "" {
		w, err := output.NewWriterForFormat(a.stdout, a.cfg.Defaults.OutputFormat)
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	w, err := output.NewFileWriter(a.outputFile, a.cfg.Defaults.OutputFormat)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// writeRecords opens the writer, writes records, and reports how many went
// out.
func writeRecords[T any](a *app, kind string, records []T) error {
	writer, err := a.openWriter()
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := output.WriteAll(writer, records); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintf(a.stderr, "No %s found\n", kind)
	} else {
		fmt.Fprintf(a.stderr, "Wrote %d %s\n", len(records), kind)
	}
	return nil
}
