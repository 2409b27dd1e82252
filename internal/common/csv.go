// Package common provides the CSV input and output shared by the batch
// commands.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/scanerror"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// DefaultDelimiter is the CSV field separator used when none is configured.
const DefaultDelimiter = ','

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &scanerror.InvalidInputError{FilePath: filePath, Reason: "file does not exist"}
		}
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadMessages reads the messages of a batch scan. The file must have a text
// column; rows without an id get a generated one.
func ReadMessages(filePath string, delimiter rune, logger logging.Logger) ([]models.Message, error) {
	if err := requireColumn(filePath, delimiter, "text"); err != nil {
		return nil, err
	}

	messages, err := ReadCSVFile[models.Message](filePath, delimiter, logger)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		if strings.TrimSpace(messages[i].ID) == "" {
			messages[i].ID = uuid.NewString()
		}
	}
	return messages, nil
}

func requireColumn(filePath string, delimiter rune, column string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &scanerror.InvalidInputError{FilePath: filePath, Reason: "file does not exist"}
		}
		return fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &scanerror.InvalidInputError{FilePath: filePath, Reason: "file is empty"}
		}
		return &scanerror.InvalidInputError{FilePath: filePath, Reason: "unreadable header: " + err.Error()}
	}
	for _, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), column) {
			return nil
		}
	}
	return &scanerror.InvalidInputError{FilePath: filePath, Reason: fmt.Sprintf("missing '%s' column", column)}
}

// WriteScanRecords writes records to csvFile, creating its directory.
func WriteScanRecords(records []models.ScanRecord, csvFile string, delimiter rune, logger logging.Logger) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteScanRecordsTo(file, records, delimiter); err != nil {
		logger.WithError(err).Error("Failed to marshal records to CSV")
		return err
	}

	logger.Info("Successfully wrote scan records to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}

// WriteScanRecordsTo writes records as CSV to w.
func WriteScanRecordsTo(w io.Writer, records []models.ScanRecord, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
