package core

// The known categories and their display colors. The set is advisory:
// transactions keep whatever label they were created with, and anything
// outside this table renders with the fallback color.
var categoryColors = map[string]string{
	"Food":     "#ef4444",
	"Travel":   "#f59e0b",
	"Bills":    "#10b981",
	"Salary":   "#3b82f6",
	"Shopping": "#8b5cf6",
	"Other":    "#ec4899",
}

// knownCategories fixes the presentation order of the table above.
var knownCategories = []string{"Food", "Travel", "Bills", "Salary", "Shopping", "Other"}

const fallbackColor = "#6b7280"

// ColorFor resolves the display color for a category label.
func ColorFor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return fallbackColor
}

// KnownCategories returns the known labels in presentation order.
func KnownCategories() []string {
	return append([]string(nil), knownCategories...)
}

// palette returns the defined colors in presentation order, for chart
// slices whose category has no color of its own.
func palette() []string {
	out := make([]string, len(knownCategories))
	for i, name := range knownCategories {
		out[i] = categoryColors[name]
	}
	return out
}
