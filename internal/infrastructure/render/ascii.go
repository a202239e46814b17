package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/younwookim/kinebody/internal/domain/entity"
)

// asciiStyles maps glyphs to lipgloss styles
var asciiStyles = map[rune]lipgloss.Style{
	'#':  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	'/':  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	'\\': lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	'%':  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	'H':  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	'=':  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	'.':  lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	'@':  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	'E':  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	'$':  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	'o':  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
}

// TileGlyph returns the character drawn for a tile
func TileGlyph(t entity.Tile) rune {
	switch t.Type {
	case entity.TileSolid:
		switch {
		case t.Breakable:
			return '%'
		case t.IsSlope() && t.Normal.X < 0:
			return '/'
		case t.IsSlope():
			return '\\'
		default:
			return '#'
		}
	case entity.TileLadder:
		return 'H'
	case entity.TileNeutral:
		return '='
	default:
		return '.'
	}
}

// BodyGlyph returns the character drawn for a body
func BodyGlyph(t entity.EntityType) rune {
	switch t {
	case entity.TypePlayer:
		return '@'
	case entity.TypeEnemy:
		return 'E'
	case entity.TypeCollectable:
		return '$'
	default:
		return 'o'
	}
}

// ASCII renders the stage one character per tile, with each live body drawn
// in the tile holding its center. Later bodies overwrite earlier ones.
// When styled is false the output is plain text.
func ASCII(stage *entity.Stage, bodies []*entity.Body, styled bool) string {
	grid := make([][]rune, stage.Height)
	for y := range grid {
		grid[y] = make([]rune, stage.Width)
		for x := range grid[y] {
			grid[y][x] = TileGlyph(stage.GetTile(x, y))
		}
	}

	ts := float64(stage.TileSize)
	for _, b := range bodies {
		if !b.Alive {
			continue
		}
		tx := int(b.Position.X / ts)
		ty := int(b.Position.Y / ts)
		if b.Position.X < 0 || b.Position.Y < 0 || tx >= stage.Width || ty >= stage.Height {
			continue
		}
		grid[ty][tx] = BodyGlyph(b.Type)
	}

	var sb strings.Builder
	sb.Grow(stage.Width*stage.Height*2 + stage.Height)

	for y, row := range grid {
		if y > 0 {
			sb.WriteRune('\n')
		}
		if !styled {
			sb.WriteString(string(row))
			continue
		}

		// Group consecutive cells with the same glyph
		x := 0
		for x < len(row) {
			start := row[x]
			end := x
			for end < len(row) && row[end] == start {
				end++
			}
			run := string(row[x:end])
			if style, ok := asciiStyles[start]; ok {
				run = style.Render(run)
			}
			sb.WriteString(run)
			x = end
		}
	}
	return sb.String()
}
