// Package common provides the file helpers shared by the rule store, the
// report writer and the CLI.
package common

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Delimiter is the field separator used for CSV input and output.
var Delimiter rune = ','

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SetDelimiter sets the CSV field separator.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, filePath))
		}
	}()

	rows, err := ReadCSV[TCSVRow](file)
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file %s: %w", filePath, err)
	}

	log.Debug("Read CSV data",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// ReadCSV decodes CSV rows from r, ignoring a leading UTF-8 byte order mark.
func ReadCSV[TCSVRow any](r io.Reader) ([]TCSVRow, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(br)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteCSV encodes rows to w with a header line.
func WriteCSV[TCSVRow any](w io.Writer, rows []TCSVRow) error {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteCSVFile writes rows to filePath in one step; readers never observe a
// partially written file.
func WriteCSVFile[TCSVRow any](filePath string, rows []TCSVRow) error {
	if rows == nil {
		rows = []TCSVRow{}
	}
	err := WriteFileAtomic(filePath, func(w io.Writer) error {
		return WriteCSV(w, rows)
	})
	if err != nil {
		return err
	}

	log.Info("Wrote CSV file",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}

// WriteFileAtomic writes through a temporary file in the target directory
// and renames it over filePath once write succeeds.
func WriteFileAtomic(filePath string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(models.PermissionOutputFile); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error setting file mode: %w", err)
	}
	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}
	if err = os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("error replacing %s: %w", filePath, err)
	}
	return nil
}
