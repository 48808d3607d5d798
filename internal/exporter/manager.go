package exporter

import (
	"strings"
)

// GetExporters returns the exporters matching the requested format names.
// Unknown formats are ignored; duplicates collapse.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "json":
			exporters = append(exporters, NewJSONExporter())
		case "excel", "xlsx":
			exporters = append(exporters, NewExcelExporter())
		}
	}

	return exporters
}
