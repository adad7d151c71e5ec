package lockout

import (
	"strings"
	"testing"

	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

func TestRenderBoardEmpty(t *testing.T) {
	if out := RenderBoard(nil, 1000); out != "" {
		t.Errorf("sin registros el tablón debe ser vacío, fue %q", out)
	}
}

func TestRenderBoardStates(t *testing.T) {
	ts := 700.0
	records := []*models.JailRecord{
		{GuildID: "g1", UserID: "aaa", TotalSeconds: 600, RemainingSeconds: 600, LastCheck: &ts},
		{GuildID: "g1", UserID: "bbb", TotalSeconds: 600, RemainingSeconds: 300},
	}

	out := RenderBoard(records, 1000)

	if !strings.Contains(out, "▶️ contando") {
		t.Error("un registro con marca de agua debe aparecer contando")
	}
	if !strings.Contains(out, "⏸️ pausado") {
		t.Error("un registro sin marca de agua debe aparecer pausado")
	}

	// El restante del que cuenta se proyecta en vivo: 600 - (1000-700) = 300s = 5 min
	if !strings.Contains(out, "<@aaa> — quedan 5 min") {
		t.Errorf("el restante proyectado debería ser 5 min:\n%s", out)
	}
}

func TestRenderBoardStableOrdering(t *testing.T) {
	records := []*models.JailRecord{
		{GuildID: "g1", UserID: "zzz", TotalSeconds: 600, RemainingSeconds: 600},
		{GuildID: "g1", UserID: "aaa", TotalSeconds: 600, RemainingSeconds: 600},
	}

	out := RenderBoard(records, 0)
	if strings.Index(out, "<@aaa>") > strings.Index(out, "<@zzz>") {
		t.Error("los registros deben ordenarse por usuario para que el tablón sea estable")
	}

	// El mismo estado debe producir exactamente el mismo contenido
	reversed := []*models.JailRecord{records[1], records[0]}
	if out != RenderBoard(reversed, 0) {
		t.Error("el orden de entrada no debe cambiar el contenido renderizado")
	}
}

func TestRenderBoardGridFill(t *testing.T) {
	// Mitad de condena servida: la mitad de las 32 celdas en rojo
	records := []*models.JailRecord{
		{GuildID: "g1", UserID: "u1", TotalSeconds: 1000, RemainingSeconds: 500},
	}

	out := RenderBoard(records, 0)
	if got := strings.Count(out, cellServed); got != boardCells/2 {
		t.Errorf("media condena debería pintar %d celdas, pintó %d", boardCells/2, got)
	}
	if got := strings.Count(out, cellPending); got != boardCells/2 {
		t.Errorf("media condena debería dejar %d celdas pendientes, dejó %d", boardCells/2, got)
	}
}

func TestFilledCells(t *testing.T) {
	cases := []struct {
		total     float64
		remaining float64
		want      int
	}{
		{1000, 1000, 0},
		{1000, 0, boardCells},
		{1000, 500, boardCells / 2},
		{1000, 750, boardCells / 4},
		{0, 0, boardCells},       // condena degenerada: se muestra cumplida
		{1000, 1200, 0},          // restante inflado no pinta negativo
		{1000, -50, boardCells},  // restante negativo se recorta al total
	}

	for _, c := range cases {
		if got := filledCells(c.total, c.remaining); got != c.want {
			t.Errorf("filledCells(%v, %v) = %d, esperado %d", c.total, c.remaining, got, c.want)
		}
	}
}
