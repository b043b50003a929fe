package models

import "time"

type TestResult string

const (
	TestResultPositive TestResult = "Positive"
	TestResultNegative TestResult = "Negative"
)

var TestResults = []TestResult{TestResultPositive, TestResultNegative}

func (r TestResult) Valid() bool {
	return r == TestResultPositive || r == TestResultNegative
}

// TestingRecord is one fabricated Pillar 2 submission line.
type TestingRecord struct {
	ID             int        `gorm:"column:id;primaryKey;autoIncrement"          json:"-"`
	SessionID      string     `gorm:"column:session_id;type:varchar(64);index"    json:"-"`
	Run            int        `gorm:"column:run;not null"                         json:"run"`
	NHSNumber      int64      `gorm:"column:nhs_number;not null"                  json:"nhsNumber"`
	Date           time.Time  `gorm:"column:date;type:date;not null"              json:"date"`
	Surname        string     `gorm:"column:surname;type:varchar(64)"             json:"surname"`
	Forename       string     `gorm:"column:forename;type:varchar(64)"            json:"forename"`
	HospitalNumber string     `gorm:"column:hospital_number;type:varchar(8)"      json:"hospitalNumber"`
	DateOfBirth    time.Time  `gorm:"column:date_of_birth;type:date;not null"     json:"dateOfBirth"`
	Postcode       string     `gorm:"column:postcode;type:varchar(8)"             json:"postcode"`
	TestNumber     string     `gorm:"column:test_number;type:varchar(12)"         json:"testNumber"`
	TestResult     TestResult `gorm:"column:test_result;type:varchar(8);not null" json:"testResult"`
}
