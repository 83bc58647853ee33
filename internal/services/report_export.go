package services

import (
	"fmt"
	"strings"

	"github.com/mockinsight/interview-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	resultsSheet = "Results"

	ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var resultHeaders = []string{
	"#", "Question", "Your Answer", "Score", "Feedback", "Improvement Tips",
}

// BuildReportWorkbook renders a report as an XLSX workbook with a summary
// sheet and one row per answered question.
func BuildReportWorkbook(report *models.InterviewReport, req *models.InterviewRequest) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel style: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Overall Score", fmt.Sprintf("%.1f/10", report.OverallScore)},
		{"Summary", report.Summary},
		{"Questions Answered", len(report.Results)},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	if req != nil {
		summaryRows = append(summaryRows,
			[]interface{}{"Job Position", req.JobPosition},
			[]interface{}{"Company", req.Company},
			[]interface{}{"Experience", req.Experience},
		)
	}
	for rowIndex, row := range summaryRows {
		if err := writeRow(f, summarySheet, rowIndex+1, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summaryRows)), headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style Excel sheet: %w", err)
	}

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	header := make([]interface{}, len(resultHeaders))
	for i, h := range resultHeaders {
		header[i] = h
	}
	if err := writeRow(f, resultsSheet, 1, header); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(resultHeaders), 1)
	if err := f.SetCellStyle(resultsSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style Excel sheet: %w", err)
	}

	for i, result := range report.Results {
		row := []interface{}{
			i + 1,
			result.QuestionText,
			result.AnswerText,
			result.Score,
			result.Feedback,
			strings.Join(result.Tips, "\n"),
		}
		if err := writeRow(f, resultsSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

// ReportFilename is the download name offered for a session's report.
func ReportFilename(sessionID string) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("mockinsight-report-%s.xlsx", short)
}
