package export

import (
	"fmt"
	"io"

	"pillar2/internal/models"
	"pillar2/internal/utils"

	"github.com/parquet-go/parquet-go"
)

const ParquetFileName = "covid_testing_data.parquet"

type parquetRow struct {
	NHSNumber      int64  `parquet:"nhs_number"`
	Date           string `parquet:"date"`
	Surname        string `parquet:"surname"`
	Forename       string `parquet:"forename"`
	HospitalNumber string `parquet:"hospital_number"`
	DateOfBirth    string `parquet:"date_of_birth"`
	Postcode       string `parquet:"postcode"`
	TestNumber     string `parquet:"test_number"`
	TestResult     string `parquet:"test_result"`
}

func toParquetRow(record models.TestingRecord) parquetRow {
	return parquetRow{
		NHSNumber:      record.NHSNumber,
		Date:           utils.FormatDate(record.Date),
		Surname:        record.Surname,
		Forename:       record.Forename,
		HospitalNumber: record.HospitalNumber,
		DateOfBirth:    utils.FormatDate(record.DateOfBirth),
		Postcode:       record.Postcode,
		TestNumber:     record.TestNumber,
		TestResult:     string(record.TestResult),
	}
}

// WriteParquet writes records as a single parquet file with the CSV column order.
func WriteParquet(w io.Writer, records []models.TestingRecord) error {
	rows := make([]parquetRow, len(records))
	for i, record := range records {
		rows[i] = toParquetRow(record)
	}

	writer := parquet.NewGenericWriter[parquetRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return nil
}
