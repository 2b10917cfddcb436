package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/SaehwanPark/parquet-summarizer/internal/summary"
)

const version = "0.2.0"

var (
	outputFile           string
	lowMemory            bool
	categoricalThreshold int
	recursive            bool
)

var rootCmd = &cobra.Command{
	Use:     "parquet-summarizer [file or directory]",
	Short:   "Analyze and summarize Parquet files efficiently",
	Version: version,
	Long: `Summarize Parquet files with per-column statistics.
Numeric columns report mean, standard deviation, and interquartile range;
low-cardinality columns report a value frequency table with percentages.

Examples:
  parquet-summarizer data.parquet                          # Print summary to stdout
  parquet-summarizer data.parquet -o summary.txt           # Save summary to a file
  parquet-summarizer data.parquet --low-memory             # Reduced-memory scan
  parquet-summarizer data.parquet --categorical-threshold 25
  parquet-summarizer /data/warehouse/ --recursive          # Every parquet file under a directory`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := summary.Config{
			InputPath:            args[0],
			OutputPath:           outputFile,
			LowMemory:            lowMemory,
			CategoricalThreshold: categoricalThreshold,
			Recursive:            recursive,
		}
		return summary.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

// Exit codes for the error taxonomy.
const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
	exitStats  = 3
	exitIO     = 4
)

// Execute runs the root command and maps the error taxonomy to distinct
// exit codes. Cobra has already written the error line to stderr.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}

	var (
		cfgErr   *summary.ConfigError
		statsErr *summary.StatsError
		ioErr    *summary.IOError
	)
	switch {
	case errors.As(err, &cfgErr):
		return exitConfig
	case errors.As(err, &statsErr):
		return exitStats
	case errors.As(err, &ioErr):
		return exitIO
	}
	return exitError
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Write summary to a file instead of stdout")
	rootCmd.Flags().BoolVar(&lowMemory, "low-memory", false,
		"Process the file with reduced memory usage (limits parallelism)")
	rootCmd.Flags().IntVar(&categoricalThreshold, "categorical-threshold", 10,
		"Maximum number of distinct values to consider a column categorical")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"When the input is a directory, search it recursively")
}
