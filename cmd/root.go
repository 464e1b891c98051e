package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mjosborne1/check-sparked-server/internal/app"
	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	outputDir string
	filters   []string
	reporter  string
)

var rootCmd = &cobra.Command{
	Use:   "check-sparked-server",
	Short: "Audits a Sparked FHIR server against the eRequesting IG and test data corpus.",
	Long: `check-sparked-server verifies that a Sparked (AU eRequesting) FHIR server
reports the expected active profile versions, counts live instances per tracked
resource type, tallies test data files in the GitHub corpus, and prints a
per-resource-type comparison. The full console transcript is saved to a
timestamped file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, bootstrapErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if bootstrapErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", bootstrapErr)
			if appErr := (*apperrors.AppError)(nil); errors.As(bootstrapErr, &appErr) {
				if appErr.IsUserFacing {
					fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
					if appErr.SuggestedAction != "" {
						fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
					}
				}
			}
			return bootstrapErr
		}

		runErr := application.Run(cmd.Context())
		if runErr != nil {
			userMsg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return runErr
		}

		return nil
	},
}

func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .check-sparked-server.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Directory for transcript files (supports ~ and $VAR expansion)")
	rootCmd.PersistentFlags().StringSliceVar(&filters, "filters", nil, "Corpus directory name prefixes to scan (comma separated)")
	rootCmd.PersistentFlags().StringVar(&reporter, "reporter", "", "Comparison report format (text, json)")

	viper.BindPFlag("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("settings.reporter", rootCmd.PersistentFlags().Lookup("reporter"))
	viper.BindPFlag("report.output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	viper.BindPFlag("corpus.filters", rootCmd.PersistentFlags().Lookup("filters"))

	viper.SetEnvPrefix("SPARKED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Legacy environment names the original deployment used.
	viper.BindEnv("server.base_url", "SPARKED_SERVER_BASE_URL", "FHIR_SERVER")
	viper.BindEnv("server.use_auth", "SPARKED_SERVER_USE_AUTH", "USE_AUTH")
	viper.BindEnv("server.username", "SPARKED_SERVER_USERNAME", "FHIR_USERNAME")
	viper.BindEnv("server.password", "SPARKED_SERVER_PASSWORD", "FHIR_PASSWORD")
	viper.BindEnv("corpus.github.token", "SPARKED_CORPUS_GITHUB_TOKEN", "GITHUB_TOKEN")
	viper.BindEnv("corpus.filters", "SPARKED_CORPUS_FILTERS", "TESTDATA_FILTERS")
	viper.BindEnv("report.output_dir", "SPARKED_REPORT_OUTPUT_DIR", "OUTPUT_DIR")
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".check-sparked-server")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintln(os.Stderr, "Config file not found, using defaults and environment variables.")
		} else {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}

	return nil
}
