package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinecluster/internal/models"
)

const cardWidth = 30

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#7a8599")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			Width(cardWidth)
	selectedStyle = cardStyle.BorderForeground(accent)
)

// cardBody: título, géneros, cluster y poster (o "Poster no disponible").
func cardBody(c models.MovieCard) string {
	poster := mutedStyle.Render("Poster no disponible")
	if c.HasPoster {
		poster = c.PosterURL
	}
	return strings.Join([]string{
		titleStyle.Render(c.Title),
		mutedStyle.Render(strings.ReplaceAll(c.Genres, "|", ", ")),
		fmt.Sprintf("cluster %d", c.Cluster),
		poster,
	}, "\n")
}

func renderSelected(c models.MovieCard, cluster int) string {
	head := headerStyle.Render(fmt.Sprintf("Seleccionada (cluster %d)", cluster))
	return lipgloss.JoinVertical(lipgloss.Left, head, selectedStyle.Render(cardBody(c)))
}

// renderGrid dibuja las filas que arma grid.Layout.
func renderGrid(rows [][]models.MovieCard) string {
	if len(rows) == 0 {
		return mutedStyle.Render("(sin resultados)")
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = cardStyle.Render(cardBody(c))
		}
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSummary(s models.GenreFilterSummary) string {
	primary := s.PrimaryGenre
	if primary == "" {
		primary = "-"
	}
	return headerStyle.Render(fmt.Sprintf("%d películas · %d clusters · género principal: %s", s.Matches, s.Clusters, primary))
}

// renderTable alinea columnas con el ancho máximo de cada una.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i]).Render(cell)
		}
		return strings.Join(parts, "  ")
	}

	var b strings.Builder
	b.WriteString(line(header, headerStyle))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(line(r, lipgloss.NewStyle()))
	}
	return b.String()
}
