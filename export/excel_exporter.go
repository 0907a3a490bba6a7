package export

import (
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	exporterType = "excel-exporter"

	SummarySheet     = "Summary"
	DailySheet       = "Daily"
	WeatherSheet     = "Weather"
	CategoriesSheet  = "Categories"
	CorrelationSheet = "Correlation"

	defaultSheet = "Sheet1"
	columnWidth  = 18.0
)

// Sheets returns the sheet names of the workbook in order
func Sheets() []string {
	return []string{SummarySheet, DailySheet, WeatherSheet, CategoriesSheet, CorrelationSheet}
}

// ExcelExporter writes a pipeline result as an xlsx workbook, one sheet per dashboard view
type ExcelExporter struct {
	creator string
}

func NewExcelExporter(creator string) *ExcelExporter {
	return &ExcelExporter{
		creator: creator,
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", exporterType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", exporterType, method, message)
}

// Generate returns the workbook as bytes
func (e *ExcelExporter) Generate(result *pipeline.Result) ([]byte, error) {
	f, err := e.build(result)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	log.Info(getLogMessage("Generate", fmt.Sprintf("workbook generated for %s", result.Request.Interval), nil))
	return buf.Bytes(), nil
}

// SaveFile writes the workbook to path
func (e *ExcelExporter) SaveFile(result *pipeline.Result, path string) error {
	f, err := e.build(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		log.Error(getLogMessage("SaveFile", fmt.Sprintf("error saving %s", path), err))
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	log.Info(getLogMessage("SaveFile", fmt.Sprintf("workbook saved in %s", path), nil))
	return nil
}

func (e *ExcelExporter) build(result *pipeline.Result) (*excelize.File, error) {
	if result == nil {
		return nil, fmt.Errorf("nil pipeline result")
	}

	f := excelize.NewFile()

	err := f.SetDocProps(&excelize.DocProperties{
		Title:       "Bike Rental Dashboard",
		Subject:     "Bike rental analysis",
		Creator:     e.creator,
		Description: fmt.Sprintf("Rentals between %s and %s, user type %s", result.Request.Interval.Start.Format(interval.DateLayout), result.Request.Interval.End.Format(interval.DateLayout), result.Request.UserType),
		Created:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	builders := []struct {
		sheet string
		rows  [][]interface{}
	}{
		{SummarySheet, summaryRows(result)},
		{DailySheet, dailyRows(result.Daily)},
		{WeatherSheet, averageRows("Weather", result.WeatherAverages)},
		{CategoriesSheet, averageRows("Category", result.CategoryAverages)},
		{CorrelationSheet, correlationRows(result)},
	}

	for _, builder := range builders {
		if err := writeSheet(f, builder.sheet, builder.rows, headerStyle); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", builder.sheet, err)
		}
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	if sheet != SummarySheet {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	maxColumns := 1
	for rowIdx := range rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[rowIdx]); err != nil {
			return err
		}
		if len(rows[rowIdx]) > maxColumns {
			maxColumns = len(rows[rowIdx])
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(maxColumns)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastColumn, columnWidth); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", lastColumn+"1", headerStyle)
}

func summaryRows(result *pipeline.Result) [][]interface{} {
	return [][]interface{}{
		{"Metric", "Value"},
		{"Start", result.Request.Interval.Start.Format(interval.DateLayout)},
		{"End", result.Request.Interval.End.Format(interval.DateLayout)},
		{"User Type", string(result.Request.UserType)},
		{"Granularity", string(result.Request.Granularity)},
		{"Records", result.Totals.Records},
		{"Total Users", result.Totals.Total},
		{"Casual Users", result.Totals.Casual},
		{"Registered Users", result.Totals.Registered},
		{"Daily Series Column", result.Request.UserType.Column()},
	}
}

func dailyRows(series aggregate.WorkingDaySeries) [][]interface{} {
	rows := [][]interface{}{{"Date", "Day Type", "Casual", "Registered", "Total"}}
	for _, points := range [][]aggregate.DailyPoint{series.Working, series.NonWorking} {
		for _, point := range points {
			dayType := "Non-working Day"
			if point.WorkingDay {
				dayType = "Working Day"
			}
			rows = append(rows, []interface{}{point.Date.Format(interval.DateLayout), dayType, point.Casual, point.Registered, point.Total})
		}
	}
	return rows
}

func averageRows(keyHeader string, averages []aggregate.AverageRow) [][]interface{} {
	rows := [][]interface{}{{keyHeader, "Records", "Avg Casual", "Avg Registered", "Avg Total"}}
	for _, average := range averages {
		rows = append(rows, []interface{}{average.Key, average.Records, average.Casual, average.Registered, average.Total})
	}
	return rows
}

// correlationRows leaves NaN coefficients as empty cells
func correlationRows(result *pipeline.Result) [][]interface{} {
	columns := result.Correlation.Columns()
	header := []interface{}{""}
	for _, column := range columns {
		header = append(header, column)
	}

	rows := [][]interface{}{header}
	for i, column := range columns {
		row := []interface{}{column}
		for j := range columns {
			value := result.Correlation.At(i, j)
			if math.IsNaN(value) {
				row = append(row, nil)
				continue
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return rows
}
