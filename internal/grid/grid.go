// Package grid reparte resultados en filas de un número fijo de columnas.
package grid

const (
	RecommendationColumns = 3
	ShowcaseColumns       = 5
)

// Layout parte items en filas de cols elementos; la última fila puede quedar
// incompleta. cols <= 0 se trata como una sola columna.
func Layout[T any](items []T, cols int) [][]T {
	if cols <= 0 {
		cols = 1
	}
	rows := make([][]T, 0, (len(items)+cols-1)/cols)
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		rows = append(rows, items[start:end:end])
	}
	return rows
}
