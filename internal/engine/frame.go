package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

const (
	defaultBatchSize   = 64 * 1024
	lowMemoryBatchSize = 8 * 1024
)

// Options controls how a Parquet file is scanned.
type Options struct {
	// LowMemory trades parallelism for reduced peak memory: column
	// decoding runs single-threaded over buffered streams with a
	// smaller batch size, and the file is memory-mapped instead of
	// read into heap buffers.
	LowMemory bool
}

// Frame is a lazily-scanned Parquet file. Opening a Frame reads only the
// footer metadata; row data is decoded on demand, one column at a time.
type Frame struct {
	path   string
	rdr    *file.Reader
	fr     *pqarrow.FileReader
	schema *arrow.Schema
	batch  int64
}

// Scan opens path as a lazy frame. The schema and row count are available
// immediately; no row data is read until ScanColumn is called.
func Scan(path string, opts Options) (*Frame, error) {
	props := parquet.NewReaderProperties(memory.DefaultAllocator)
	batch := int64(defaultBatchSize)
	parallel := true
	memoryMap := false

	if opts.LowMemory {
		props.BufferedStreamEnabled = true
		batch = lowMemoryBatchSize
		parallel = false
		memoryMap = true
	}

	rdr, err := file.OpenParquetFile(path, memoryMap, file.WithReadProps(props))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file %s: %w", path, err)
	}

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{
		Parallel:  parallel,
		BatchSize: batch,
	}, memory.DefaultAllocator)
	if err != nil {
		rdr.Close()
		return nil, fmt.Errorf("failed to create arrow reader for %s: %w", path, err)
	}

	schema, err := fr.Schema()
	if err != nil {
		rdr.Close()
		return nil, fmt.Errorf("failed to read schema of %s: %w", path, err)
	}

	return &Frame{
		path:   path,
		rdr:    rdr,
		fr:     fr,
		schema: schema,
		batch:  batch,
	}, nil
}

func (f *Frame) Path() string {
	return f.path
}

// Schema returns the arrow schema derived from the file metadata.
func (f *Frame) Schema() *arrow.Schema {
	return f.schema
}

func (f *Frame) NumRows() int64 {
	return f.rdr.NumRows()
}

func (f *Frame) NumCols() int {
	return f.schema.NumFields()
}

func (f *Frame) Close() error {
	return f.rdr.Close()
}

// ScanColumn streams column idx through fn in batches. Each arrow.Array
// passed to fn is only valid for the duration of the call. Returning an
// error from fn aborts the scan.
func (f *Frame) ScanColumn(ctx context.Context, idx int, fn func(arrow.Array) error) error {
	if idx < 0 || idx >= f.schema.NumFields() {
		return fmt.Errorf("column index %d out of range (%d columns)", idx, f.schema.NumFields())
	}

	remaining := f.rdr.NumRows()
	if remaining == 0 {
		return nil
	}

	cr, err := f.fr.GetColumn(ctx, idx)
	if err != nil {
		return fmt.Errorf("failed to read column %s: %w", f.schema.Field(idx).Name, err)
	}
	defer cr.Release()

	for remaining > 0 {
		chunked, err := cr.NextBatch(f.batch)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to decode column %s: %w", f.schema.Field(idx).Name, err)
		}
		if chunked.Len() == 0 {
			chunked.Release()
			return nil
		}

		for _, chunk := range chunked.Chunks() {
			if err := fn(chunk); err != nil {
				chunked.Release()
				return err
			}
		}

		remaining -= int64(chunked.Len())
		chunked.Release()
	}

	return nil
}
