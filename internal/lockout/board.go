package lockout

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

const (
	boardColumns = 16
	boardRows    = 2
	boardCells   = boardColumns * boardRows

	cellServed  = "🟥"
	cellPending = "⬛"
)

// RenderBoard builds the status board content for a guild's active jail
// records. Pure rendering: the caller decides where the message goes.
//
// Each inmate gets a 16x2 grid of cells filled proportionally to served
// time. The fill is interleaved by column (column c owns cells 2c and 2c+1)
// so both rows advance left to right together like a double progress bar.
func RenderBoard(records []*models.JailRecord, now float64) string {
	if len(records) == 0 {
		return ""
	}

	// Stable ordering between renders so an unchanged board compares equal
	sorted := make([]*models.JailRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })

	var b strings.Builder
	b.WriteString("👮 **Estado de la cárcel**\n")

	for _, rec := range sorted {
		remaining := rec.RemainingSeconds
		if rec.LastCheck != nil {
			// Project the live countdown without touching the record
			remaining -= now - *rec.LastCheck
			if remaining < 0 {
				remaining = 0
			}
		}

		state := "⏸️ pausado"
		if rec.Counting() {
			state = "▶️ contando"
		}

		minutes := int(math.Ceil(remaining / 60))
		b.WriteString(fmt.Sprintf("\n<@%s> — quedan %d min (%s)\n", rec.UserID, minutes, state))

		filled := filledCells(rec.TotalSeconds, remaining)
		for row := 0; row < boardRows; row++ {
			for col := 0; col < boardColumns; col++ {
				if col*boardRows+row < filled {
					b.WriteString(cellServed)
				} else {
					b.WriteString(cellPending)
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// filledCells maps served time onto the grid, clamped to [0, boardCells].
func filledCells(total, remaining float64) int {
	if total <= 0 {
		return boardCells
	}
	elapsed := total - remaining
	if elapsed < 0 {
		elapsed = 0
	}
	filled := int(math.Round(elapsed / total * boardCells))
	if filled > boardCells {
		filled = boardCells
	}
	return filled
}
