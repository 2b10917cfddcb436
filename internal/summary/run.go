package summary

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/SaehwanPark/parquet-summarizer/internal/connectors"
	"github.com/SaehwanPark/parquet-summarizer/internal/engine"
)

// Config is the immutable per-run configuration.
type Config struct {
	InputPath            string
	OutputPath           string
	LowMemory            bool
	CategoricalThreshold int
	Recursive            bool
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return &ConfigError{Flag: "input path", Reason: "must not be empty"}
	}
	if c.CategoricalThreshold < 0 {
		return &ConfigError{
			Flag:   "--categorical-threshold",
			Reason: fmt.Sprintf("must be non-negative, got %d", c.CategoricalThreshold),
		}
	}
	return nil
}

// Run drives a full summarize pass: validate the configuration, summarize
// the input file (or every parquet file under an input directory), and
// write the report to stdout or the configured output file. The report is
// buffered in full before anything is written, so a failed run never
// leaves a partial report behind.
func Run(ctx context.Context, cfg Config, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		return &ConfigError{Flag: "input path", Reason: fmt.Sprintf("%s does not exist", cfg.InputPath)}
	}

	var text string
	if info.IsDir() {
		text, err = summarizeDirectory(ctx, cfg)
	} else {
		bar := newProgressBar(-1, fmt.Sprintf("Summarizing %s...", filepath.Base(cfg.InputPath)))
		text, err = summarizeFile(ctx, cfg, cfg.InputPath, bar)
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if cfg.OutputPath == "" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return &IOError{Path: "stdout", Err: err}
		}
		return nil
	}

	if err := os.WriteFile(cfg.OutputPath, []byte(text), 0644); err != nil {
		return &IOError{Path: cfg.OutputPath, Err: err}
	}
	fmt.Fprintf(stdout, "Summary written to: %s\n", cfg.OutputPath)
	return nil
}

func summarizeFile(ctx context.Context, cfg Config, path string, bar *progressbar.ProgressBar) (string, error) {
	frame, err := engine.Scan(path, engine.Options{LowMemory: cfg.LowMemory})
	if err != nil {
		return "", &StatsError{Path: path, Err: err}
	}
	defer frame.Close()

	report := Report{
		Path:    path,
		Rows:    frame.NumRows(),
		Columns: make([]ColumnSummary, 0, frame.NumCols()),
	}

	for i := 0; i < frame.NumCols(); i++ {
		col, err := Collect(ctx, frame, i, cfg.CategoricalThreshold)
		if err != nil {
			return "", err
		}
		report.Columns = append(report.Columns, col)
		bar.Add(1)
	}

	return report.Format(), nil
}

// summarizeDirectory summarizes every parquet file under the input
// directory with a bounded worker pool. The concatenated report keeps
// discovery order no matter how the workers are scheduled. Files that
// fail are logged and skipped; the run only fails when nothing succeeds.
func summarizeDirectory(ctx context.Context, cfg Config) (string, error) {
	files, err := connectors.DiscoverParquet(cfg.InputPath, cfg.Recursive)
	if err != nil {
		return "", &ConfigError{Flag: "input path", Reason: err.Error()}
	}

	fmt.Fprintf(os.Stderr, "Found %d parquet files\n", len(files))
	bar := newProgressBar(len(files), "Processing files...")

	workers := runtime.NumCPU()
	if cfg.LowMemory {
		workers = 1
	}

	type fileResult struct {
		text string
		err  error
	}
	results := make([]fileResult, len(files))

	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			text, err := summarizeFile(ctx, cfg, f.Path, bar)
			results[i] = fileResult{text: text, err: err}
		}(i, f)
	}
	wg.Wait()
	bar.Finish()

	var (
		out       strings.Builder
		succeeded int
		firstErr  error
	)
	for i, res := range results {
		if res.err != nil {
			log.Printf("Failed to summarize %s: %v", files[i].Path, res.err)
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		out.WriteString(res.text)
		succeeded++
	}

	if succeeded == 0 && firstErr != nil {
		return "", firstErr
	}
	return out.String(), nil
}

func newProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] "+description),
		progressbar.OptionSetWidth(20),
	)
}
