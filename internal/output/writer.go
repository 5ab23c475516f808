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

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Supported output formats.
const (
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
)

// Writer streams catalog records to a file or io.Writer, one JSON value
// per record. Records are encoded as they arrive and never buffered.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	encoder   *json.Encoder
	count     int
	closeFunc func() error
}

// NewWriter creates an NDJSON writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		output:  w,
		encoder: json.NewEncoder(w),
	}
}

// NewIndentedWriter creates a writer that emits each record as an indented
// JSON document, for reading at a terminal.
func NewIndentedWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &Writer{
		output:  w,
		encoder: enc,
	}
}

// NewWriterForFormat picks the writer for format. An empty format means
// NDJSON.
func NewWriterForFormat(w io.Writer, format string) (*Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatNDJSON:
		return NewWriter(w), nil
	case FormatJSON:
		return NewIndentedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// NewFileWriter creates a writer for format that writes to filename.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename, format string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w, err := NewWriterForFormat(file, format)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(filename)
		return nil, err
	}
	w.closeFunc = file.Close
	return w, nil
}

// Write encodes a single record.
func (w *Writer) Write(record interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file. Only the first call
// closes it; later calls return nil.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc == nil {
		return nil
	}
	closeFunc := w.closeFunc
	w.closeFunc = nil
	return closeFunc()
}

// WriteAll writes each element of records in order and stops at the first
// failure.
func WriteAll[T any](w OutputWriter, records []T) error {
	for i := range records {
		if err := w.Write(records[i]); err != nil {
			return err
		}
	}
	return nil
}
