package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pillar2/internal/models"
	"pillar2/internal/utils"
)

const (
	CSVFileName = "covid_testing_data.csv"
	PreviewSize = 10

	fieldsPerRecord = 9
)

// Columns names the header-less CSV fields in order, for display.
var Columns = []string{
	"NHS Number",
	"Date",
	"Surname",
	"Forename",
	"Hospital Number",
	"D.O.B",
	"Postcode",
	"Test Number",
	"Test Result",
}

func csvRow(record models.TestingRecord) []string {
	return []string{
		strconv.FormatInt(record.NHSNumber, 10),
		utils.FormatDate(record.Date),
		record.Surname,
		record.Forename,
		record.HospitalNumber,
		utils.FormatDate(record.DateOfBirth),
		record.Postcode,
		record.TestNumber,
		string(record.TestResult),
	}
}

// WriteCSV writes one LF terminated line per record with no header row.
func WriteCSV(w io.Writer, records []models.TestingRecord) error {
	writer := csv.NewWriter(w)

	for i, record := range records {
		if err := writer.Write(csvRow(record)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func EncodeCSV(records []models.TestingRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PreviewLines renders the first n records as CSV lines without their terminators.
func PreviewLines(records []models.TestingRecord, n int) ([]string, error) {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}

	data, err := EncodeCSV(records[:n])
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []string{}, nil
	}
	return lines, nil
}

// ReadCSV parses header-less testing data in the download format.
func ReadCSV(r io.Reader) ([]models.TestingRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = fieldsPerRecord
	reader.TrimLeadingSpace = true

	var records []models.TestingRecord
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		record, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string) (models.TestingRecord, error) {
	nhsNumber, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.TestingRecord{}, fmt.Errorf("invalid nhs number %q: %w", row[0], err)
	}

	date, err := utils.ParseDate(row[1])
	if err != nil {
		return models.TestingRecord{}, fmt.Errorf("invalid date: %w", err)
	}

	dob, err := utils.ParseDate(row[5])
	if err != nil {
		return models.TestingRecord{}, fmt.Errorf("invalid date of birth: %w", err)
	}

	result := models.TestResult(row[8])
	if !result.Valid() {
		return models.TestingRecord{}, fmt.Errorf("invalid test result %q", row[8])
	}

	return models.TestingRecord{
		NHSNumber:      nhsNumber,
		Date:           date,
		Surname:        row[2],
		Forename:       row[3],
		HospitalNumber: row[4],
		DateOfBirth:    dob,
		Postcode:       row[6],
		TestNumber:     row[7],
		TestResult:     result,
	}, nil
}
