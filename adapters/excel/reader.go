// Package excel parses uploaded incident sheets (xlsx or csv) for batch
// scoring.
package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"crimerisk/domain/incident"
	"crimerisk/internal/errors"
	"crimerisk/ports"
)

// Header is the required first row of an incident sheet, in order.
var Header = []string{
	"latitude",
	"longitude",
	"report_date",
	"report_time",
	"victim_age",
	"police_deployed",
	"victim_gender",
	"weapon_used",
	"case_closed",
}

// SheetReader reads incident reports from an xlsx or csv stream.
type SheetReader struct {
	source   io.Reader
	fileType string // "xlsx" or "csv"
	maxRows  int
}

// NewSheetReader creates a reader for the given upload. The format is
// chosen by filename extension: .csv is parsed as CSV, anything else as
// xlsx. maxRows bounds the number of data rows accepted.
func NewSheetReader(source io.Reader, filename string, maxRows int) *SheetReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		fileType = "csv"
	}
	return &SheetReader{source: source, fileType: fileType, maxRows: maxRows}
}

// ReadReports parses the sheet into per-row results. Rows that fail to
// parse are returned with their error set; the call itself only fails if
// the sheet is structurally unreadable or the header does not match.
func (r *SheetReader) ReadReports(ctx context.Context) ([]ports.ParsedRow, error) {
	var rows [][]string
	var err error

	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.InvalidInput("sheet must have a header row and at least one data row")
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}
	if len(rows)-1 > r.maxRows {
		return nil, errors.InvalidInput(
			fmt.Sprintf("sheet has %d data rows, limit is %d", len(rows)-1, r.maxRows))
	}

	results := make([]ports.ParsedRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 2 // 1-based, after the header
		report, err := parseRow(row)
		results = append(results, ports.ParsedRow{Line: line, Report: report, Err: err})
	}
	return results, nil
}

func (r *SheetReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenReader(r.source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open xlsx upload")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}
	return rows, nil
}

func (r *SheetReader) readCSVRows() ([][]string, error) {
	data, err := io.ReadAll(r.source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv upload")
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse csv upload")
	}
	return rows, nil
}

func checkHeader(got []string) error {
	if len(got) < len(Header) {
		return errors.InvalidInput(
			fmt.Sprintf("header has %d columns, expected %d", len(got), len(Header)))
	}
	for i, want := range Header {
		if strings.TrimSpace(strings.ToLower(got[i])) != want {
			return errors.InvalidInput(
				fmt.Sprintf("header column %d is %q, expected %q", i+1, got[i], want))
		}
	}
	return nil
}

func parseRow(row []string) (incident.Report, error) {
	var report incident.Report
	if len(row) < len(Header) {
		return report, fmt.Errorf("row has %d columns, expected %d", len(row), len(Header))
	}

	cell := func(i int) string { return strings.TrimSpace(row[i]) }

	lat, err := strconv.ParseFloat(cell(0), 64)
	if err != nil {
		return report, fmt.Errorf("bad latitude %q", row[0])
	}
	lon, err := strconv.ParseFloat(cell(1), 64)
	if err != nil {
		return report, fmt.Errorf("bad longitude %q", row[1])
	}
	date, err := time.Parse("2006-01-02", cell(2))
	if err != nil {
		return report, fmt.Errorf("bad report_date %q, expected YYYY-MM-DD", row[2])
	}
	clock, err := time.Parse("15:04", cell(3))
	if err != nil {
		return report, fmt.Errorf("bad report_time %q, expected HH:MM", row[3])
	}
	age, err := strconv.Atoi(cell(4))
	if err != nil {
		return report, fmt.Errorf("bad victim_age %q", row[4])
	}
	deployed, err := strconv.Atoi(cell(5))
	if err != nil {
		return report, fmt.Errorf("bad police_deployed %q", row[5])
	}

	closed, err := parseCaseClosed(cell(8))
	if err != nil {
		return report, err
	}

	report = incident.Report{
		Latitude:  lat,
		Longitude: lon,
		ReportedAt: time.Date(date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), 0, 0, time.UTC),
		VictimAge:      age,
		PoliceDeployed: deployed,
		VictimGender:   incident.Gender(cell(6)),
		WeaponUsed:     incident.Weapon(cell(7)),
		CaseClosed:     closed,
	}
	return report, nil
}

func parseCaseClosed(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("bad case_closed %q, expected Yes or No", s)
}

var _ ports.BatchSourcePort = (*SheetReader)(nil)
