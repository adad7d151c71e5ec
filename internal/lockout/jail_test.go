package lockout

import (
	"testing"

	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

func newRecord(remaining float64) *models.JailRecord {
	return &models.JailRecord{
		GuildID:          "g1",
		UserID:           "u1",
		TotalSeconds:     remaining,
		RemainingSeconds: remaining,
	}
}

func TestAccruePausedWithoutWatermark(t *testing.T) {
	rec := newRecord(600)

	if status := Accrue(rec, 1000); status != StatusPaused {
		t.Fatalf("sin marca de agua el registro debe quedar pausado, fue %v", status)
	}
	if rec.RemainingSeconds != 600 {
		t.Errorf("pausado no debe descontar tiempo: quedan %v", rec.RemainingSeconds)
	}
	if rec.LastCheck != nil {
		t.Error("pausado no debe crear marca de agua")
	}
}

func TestAccrueCountsOnlyDelta(t *testing.T) {
	rec := newRecord(600)
	OnPresenceEnter(rec, 100)

	if status := Accrue(rec, 115); status != StatusCounting {
		t.Fatalf("esperado StatusCounting, fue %v", status)
	}
	if rec.RemainingSeconds != 585 {
		t.Errorf("tras 15s deberían quedar 585, quedan %v", rec.RemainingSeconds)
	}
	if *rec.LastCheck != 115 {
		t.Errorf("la marca de agua debe avanzar a 115, está en %v", *rec.LastCheck)
	}

	// El siguiente muestreo solo descuenta su propio intervalo
	Accrue(rec, 130)
	if rec.RemainingSeconds != 570 {
		t.Errorf("tras otros 15s deberían quedar 570, quedan %v", rec.RemainingSeconds)
	}
}

func TestAccrueClockBackwards(t *testing.T) {
	rec := newRecord(600)
	OnPresenceEnter(rec, 200)

	Accrue(rec, 150)
	if rec.RemainingSeconds != 600 {
		t.Errorf("un reloj hacia atrás no debe devolver tiempo: quedan %v", rec.RemainingSeconds)
	}
	if *rec.LastCheck != 150 {
		t.Errorf("la marca de agua debe avanzar igualmente, está en %v", *rec.LastCheck)
	}
}

func TestAccrueReleaseClampsToZero(t *testing.T) {
	rec := newRecord(10)
	OnPresenceEnter(rec, 100)

	status := Accrue(rec, 130)
	if status != StatusReleased {
		t.Fatalf("agotar la condena debe liberar, fue %v", status)
	}
	if rec.RemainingSeconds != 0 {
		t.Errorf("el restante debe quedar en 0 exacto, quedó %v", rec.RemainingSeconds)
	}
}

func TestPresenceEnterIsIdempotent(t *testing.T) {
	rec := newRecord(600)

	OnPresenceEnter(rec, 100)
	OnPresenceEnter(rec, 160)

	if *rec.LastCheck != 100 {
		t.Errorf("una entrada duplicada no debe mover la marca de agua: está en %v", *rec.LastCheck)
	}
}

func TestPresenceExitFoldsIntervalAndPauses(t *testing.T) {
	rec := newRecord(600)
	OnPresenceEnter(rec, 100)

	status := OnPresenceExit(rec, 160)
	if status != StatusCounting {
		t.Fatalf("esperado StatusCounting, fue %v", status)
	}
	if rec.RemainingSeconds != 540 {
		t.Errorf("la salida debe plegar el intervalo final: quedan %v", rec.RemainingSeconds)
	}
	if rec.LastCheck != nil {
		t.Error("tras la salida la marca de agua debe quedar limpia")
	}

	// Ausente: los muestreos posteriores no descuentan nada
	if status := Accrue(rec, 500); status != StatusPaused {
		t.Fatalf("ausente debe seguir pausado, fue %v", status)
	}
	if rec.RemainingSeconds != 540 {
		t.Errorf("ausente no descuenta tiempo: quedan %v", rec.RemainingSeconds)
	}
}

func TestPresenceExitWhileAbsentIsNoop(t *testing.T) {
	rec := newRecord(600)

	if status := OnPresenceExit(rec, 300); status != StatusPaused {
		t.Fatalf("salir sin marca de agua debe ser pausa, fue %v", status)
	}
	if rec.RemainingSeconds != 600 {
		t.Errorf("no debe descontar nada: quedan %v", rec.RemainingSeconds)
	}
}

func TestPresenceExitCanRelease(t *testing.T) {
	rec := newRecord(30)
	OnPresenceEnter(rec, 100)

	if status := OnPresenceExit(rec, 200); status != StatusReleased {
		t.Fatalf("la salida que agota la condena debe liberar, fue %v", status)
	}
	if rec.RemainingSeconds != 0 {
		t.Errorf("el restante debe quedar en 0, quedó %v", rec.RemainingSeconds)
	}
}

// Conservation: interleaving periodic sweeps with enter/exit events must
// subtract exactly the time spent present, no more, no less.
func TestAccrualConservationAcrossInterleavings(t *testing.T) {
	rec := newRecord(1000)

	// Presente de 0 a 50
	OnPresenceEnter(rec, 0)
	for ts := 7.0; ts < 50; ts += 7 {
		Accrue(rec, ts)
	}
	OnPresenceExit(rec, 50)

	// Ausente de 50 a 80: los barridos no descuentan
	for ts := 56.0; ts < 80; ts += 7 {
		Accrue(rec, ts)
	}

	// Presente de 80 a 100
	OnPresenceEnter(rec, 80)
	Accrue(rec, 87)
	Accrue(rec, 94)
	OnPresenceExit(rec, 100)

	served := rec.TotalSeconds - rec.RemainingSeconds
	if served != 70 {
		t.Errorf("debería haber servido exactamente 70s (50 + 20), sirvió %v", served)
	}
}
