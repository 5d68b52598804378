package http

// Chart colors for the dashboard breakdowns. Purely cosmetic; aggregation
// never depends on these names.

const defaultColor = "#6B7280"

var expenseColors = map[string]string{
	"food":           "#F59E0B",
	"transportation": "#8B5CF6",
	"entertainment":  "#EC4899",
	"utilities":      "#06B6D4",
	"healthcare":     "#84CC16",
	"shopping":       "#F97316",
	"education":      "#10B981",
	"other":          "#6B7280",
}

var incomeColors = map[string]string{
	"salary":     "#10B981",
	"freelance":  "#3B82F6",
	"investment": "#8B5CF6",
	"business":   "#F59E0B",
	"gift":       "#EC4899",
	"other":      "#6B7280",
}

// categoryColor returns the chart color for a category, falling back to a
// neutral gray for unknown categories.
func categoryColor(palette map[string]string, category string) string {
	if c, ok := palette[category]; ok {
		return c
	}
	return defaultColor
}
