package lockout

import "testing"

func TestScheduleActionTable(t *testing.T) {
	cases := []struct {
		name           string
		shouldBeLocked bool
		hasGrant       bool
		lockedByBot    bool
		want           ScheduleOp
	}{
		{"entra en ventana con rol", true, true, false, OpLock},
		{"en ventana con rol re-otorgado por admin", true, true, true, OpLock},
		{"en ventana ya bloqueado", true, false, true, OpNone},
		{"en ventana sin rol por mano ajena", true, false, false, OpNone},
		{"sale de ventana bloqueado por el bot", false, false, true, OpUnlock},
		{"fuera de ventana sin rol por admin", false, false, false, OpNone},
		{"fuera de ventana con rol", false, true, false, OpNone},
		{"fuera de ventana con rol y marca obsoleta", false, true, true, OpNone},
	}

	for _, c := range cases {
		got := ScheduleAction(c.shouldBeLocked, c.hasGrant, c.lockedByBot)
		if got != c.want {
			t.Errorf("%s: ScheduleAction(%v, %v, %v) = %v, esperado %v",
				c.name, c.shouldBeLocked, c.hasGrant, c.lockedByBot, got, c.want)
		}
	}
}

func TestScheduleActionIsIdempotent(t *testing.T) {
	// Tras aplicar OpLock el miembro queda sin rol y con la marca puesta:
	// la siguiente evaluación en la misma ventana no hace nada
	if got := ScheduleAction(true, false, true); got != OpNone {
		t.Errorf("reevaluar dentro de la ventana tras bloquear debería ser OpNone, fue %v", got)
	}

	// Tras aplicar OpUnlock el miembro recupera el rol y la marca se limpia:
	// la siguiente evaluación fuera de la ventana no hace nada
	if got := ScheduleAction(false, true, false); got != OpNone {
		t.Errorf("reevaluar fuera de la ventana tras desbloquear debería ser OpNone, fue %v", got)
	}
}

// Non-interference: the reconciler never undoes what an admin did by hand.
func TestScheduleActionNonInterference(t *testing.T) {
	// Un admin quitó el rol fuera de la ventana: el bot no lo devuelve,
	// la marca lockedByBot no es suya
	if got := ScheduleAction(false, false, false); got != OpNone {
		t.Errorf("el bot no debe restaurar un rol que no quitó, fue %v", got)
	}

	// Un admin quitó el rol dentro de la ventana antes de que el bot
	// actuara: el objetivo ya se cumple, no hay nada que hacer
	if got := ScheduleAction(true, false, false); got != OpNone {
		t.Errorf("el bot no debe tocar un bloqueo manual, fue %v", got)
	}
}
