// Package main provides the CLI entry point for nwpu-transcript.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/config"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/workbook"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := transcript.DefaultOptions()
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "nwpu-transcript",
		Short: "Convert NWPU transcript PDFs into the course upload template",
		Long: `nwpu-transcript reads the course tables of a Chinese and/or English
NWPU transcript PDF and writes one filled copy of the xlsx upload template
per transcript.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			if configPath != "" {
				fc, err := config.LoadFile(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				config.Apply(&opts, fc, changed)
				verbose = verbose || config.Verbose(fc, changed)
			}
			setupLogging(stderr, verbose)

			results, err := transcript.Convert(opts)
			for _, r := range results {
				fmt.Fprintf(stdout, "Wrote %d rows to %s\n", r.Rows, r.Output)
			}
			if err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.Template, config.FlagTemplate, opts.Template, "Upload template xlsx")
	flags.StringVar(&opts.ChineseSource, config.FlagChinese, "", "Chinese transcript PDF")
	flags.StringVar(&opts.EnglishSource, config.FlagEnglish, "", "English transcript PDF")
	flags.StringVar(&opts.ChineseOutput, config.FlagOutputChinese, opts.ChineseOutput, "Output path for the Chinese transcript")
	flags.StringVar(&opts.EnglishOutput, config.FlagOutputEnglish, opts.EnglishOutput, "Output path for the English transcript")
	flags.BoolVar(&opts.Validate, config.FlagValidate, false, "Validate source PDFs before extraction")
	flags.Float64Var(&opts.Table.IntersectionTolerance, config.FlagIntersectionTolerance, opts.Table.IntersectionTolerance, "Edge intersection tolerance in points")
	flags.Float64Var(&opts.Table.SnapTolerance, config.FlagSnapTolerance, opts.Table.SnapTolerance, "Edge snap tolerance in points")
	flags.StringVar(&configPath, "config", "", "YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, config.FlagVerbose, "v", false, "Enable debug logging")

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.AddCommand(newInspectCmd(stdout, stderr, &verbose))
	return rootCmd
}

func newInspectCmd(stdout, stderr io.Writer, verbose *bool) *cobra.Command {
	var asJSON, pretty bool
	cmd := &cobra.Command{
		Use:   "inspect [output.xlsx]",
		Short: "Print the course rows of a written workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(stderr, *verbose)

			summary, err := workbook.Inspect(args[0])
			if err != nil {
				return fmt.Errorf("inspect failed: %w", err)
			}
			if asJSON {
				var data []byte
				if pretty {
					data, err = json.MarshalIndent(summary, "", "  ")
				} else {
					data, err = json.Marshal(summary)
				}
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}

			fmt.Fprintf(stdout, "%s: %d rows\n", summary.Sheet, len(summary.Records))
			fmt.Fprintln(stdout, strings.Join(summary.Header, "\t"))
			for _, r := range summary.Records {
				fmt.Fprintln(stdout, strings.Join(r.Values(), "\t"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tab-separated rows")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}
