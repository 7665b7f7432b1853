package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"namecheck/domain/run"
	"namecheck/domain/score"
)

// Excel exports the ranked candidates of a run as an XLSX workbook.
func Excel(r run.Run) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Candidates"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "Name", "Style", "Total", "Tier",
		"Availability", "Social", "SEO", "Trademark", "Fit", ".com", "Trademark status", "Rationale"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, rc := range r.Ranked {
		values := []interface{}{
			row + 1,
			rc.Candidate.Name,
			string(rc.Candidate.Style),
			rc.Score.Total,
			tier(rc.Score),
			rc.Score.Subscores[score.DimAvailability],
			rc.Score.Subscores[score.DimSocial],
			rc.Score.Subscores[score.DimSEO],
			rc.Score.Subscores[score.DimTrademark],
			rc.Score.Subscores[score.DimFit],
			comSummary(rc.Result),
			string(rc.Result.TrademarkStatus),
			rc.Candidate.Rationale,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	return f.WriteToBuffer()
}
