package exporter

import (
	"fmt"
	"path/filepath"
	"strconv"

	"infra-recon/internal/config"
	"infra-recon/internal/logger"
	"infra-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter generates the human-readable requirements workbook:
// an overview sheet plus one sheet per profile.
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(docs []*model.Requirements, cfg *config.Config) error {
	outputFile := filepath.Join(cfg.Output.Dir, "infrastructure-requirements.xlsx")
	f := excelize.NewFile()
	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, docs); err != nil {
		return err
	}

	for _, doc := range docs {
		if err := e.writeProfileSheet(f, styler, doc); err != nil {
			return err
		}
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}
	logger.Info("Generated: %s", filepath.Base(outputFile))
	return nil
}

func (e *ExcelExporter) writeOverview(f *excelize.File, styler *Styler, docs []*model.Requirements) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Profile", "Platform", "Files", "External APIs", "Directories", "ConfigMaps", "Secrets", "PVCs"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, styler.HeaderStyle)
	}

	for row, doc := range docs {
		infra := doc.Infrastructure
		values := []interface{}{
			doc.Environment, string(doc.Platform),
			len(infra.Files), len(infra.ExternalAPIs), len(infra.Directories),
			len(infra.ConfigMaps), len(infra.Secrets), len(infra.Pvcs),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
			f.SetCellStyle(sheet, cell, cell, styler.DefaultStyle)
		}
	}

	f.SetColWidth(sheet, "A", "H", 16)
	return nil
}

func (e *ExcelExporter) writeProfileSheet(f *excelize.File, styler *Styler, doc *model.Requirements) error {
	sheet := doc.Environment
	if doc.Platform == model.PlatformKubernetes {
		sheet = doc.Environment + " (k8s)"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	row = e.writeSection(f, styler, sheet, row, "Files",
		[]string{"Path", "Location", "Critical", "Description"},
		func(add func(critical bool, values ...interface{})) {
			for _, file := range doc.Infrastructure.Files {
				add(file.Critical, file.Path, file.Location, file.Critical, file.Description)
			}
		})

	row = e.writeSection(f, styler, sheet, row, "External APIs",
		[]string{"URL", "Method", "Critical", "Description"},
		func(add func(critical bool, values ...interface{})) {
			for _, api := range doc.Infrastructure.ExternalAPIs {
				add(api.Critical, api.URL, api.Method, api.Critical, api.Description)
			}
		})

	if doc.Platform == model.PlatformKubernetes {
		row = e.writeSection(f, styler, sheet, row, "Namespace",
			[]string{"Name"},
			func(add func(critical bool, values ...interface{})) {
				add(true, doc.Infrastructure.Namespace)
			})

		row = e.writeSection(f, styler, sheet, row, "ConfigMaps",
			[]string{"Name", "Critical", "Description"},
			func(add func(critical bool, values ...interface{})) {
				for _, cm := range doc.Infrastructure.ConfigMaps {
					add(cm.Critical, cm.Name, cm.Critical, cm.Description)
				}
			})

		row = e.writeSection(f, styler, sheet, row, "Secrets",
			[]string{"Name", "Critical", "Description"},
			func(add func(critical bool, values ...interface{})) {
				for _, sec := range doc.Infrastructure.Secrets {
					add(sec.Critical, sec.Name, sec.Critical, sec.Description)
				}
			})

		e.writeSection(f, styler, sheet, row, "PVCs",
			[]string{"Name", "Mount Path", "Critical", "Description"},
			func(add func(critical bool, values ...interface{})) {
				for _, pvc := range doc.Infrastructure.Pvcs {
					add(pvc.Critical, pvc.Name, pvc.MountPath, pvc.Critical, pvc.Description)
				}
			})
	} else {
		e.writeSection(f, styler, sheet, row, "Directories",
			[]string{"Path", "Permissions", "Critical", "Description"},
			func(add func(critical bool, values ...interface{})) {
				for _, dir := range doc.Infrastructure.Directories {
					add(dir.Critical, dir.Path, dir.Permissions, dir.Critical, dir.Description)
				}
			})
	}

	f.SetColWidth(sheet, "A", "A", 48)
	f.SetColWidth(sheet, "B", "D", 20)
	f.SetColWidth(sheet, "D", "D", 48)
	return nil
}

// writeSection writes one titled table and returns the next free row.
func (e *ExcelExporter) writeSection(
	f *excelize.File, styler *Styler, sheet string, startRow int,
	title string, headers []string,
	fill func(add func(critical bool, values ...interface{})),
) int {
	row := startRow

	titleCell := "A" + strconv.Itoa(row)
	f.SetCellValue(sheet, titleCell, title)
	f.SetCellStyle(sheet, titleCell, titleCell, styler.SectionStyle)
	row++

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, styler.HeaderStyle)
	}
	row++

	fill(func(critical bool, values ...interface{}) {
		style := styler.CriticalStyle
		if !critical {
			style = styler.WarningStyle
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
			f.SetCellStyle(sheet, cell, cell, style)
		}
		row++
	})

	// Blank separator row between sections
	return row + 1
}
