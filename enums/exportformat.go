package enums

type ExportFormat string

const (
	ExportFormatInvalid ExportFormat = ""
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatJSON    ExportFormat = "json"
)

func ParseExportFormat(s string) ExportFormat {
	switch ExportFormat(s) {
	case ExportFormatCSV, ExportFormatJSON:
		return ExportFormat(s)
	default:
		return ExportFormatInvalid
	}
}
