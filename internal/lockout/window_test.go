package lockout

import (
	"testing"
	"time"

	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"mediodía", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): se esperaba error", c.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): error inesperado: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, esperado %d", c.input, got, c.want)
		}
	}
}

func TestIsWithinWindowNormal(t *testing.T) {
	// 09:00 - 17:00
	start, end := 9*60, 17*60

	if !IsWithinWindow(start, end, 12*60) {
		t.Error("12:00 debería estar dentro de 09:00-17:00")
	}
	if !IsWithinWindow(start, end, start) || !IsWithinWindow(start, end, end) {
		t.Error("los límites de la ventana son inclusivos")
	}
	if IsWithinWindow(start, end, 8*60) || IsWithinWindow(start, end, 18*60) {
		t.Error("fuera de la ventana no debería bloquear")
	}
}

func TestIsWithinWindowWrapsMidnight(t *testing.T) {
	// 23:00 - 07:00 cruza medianoche
	start, end := 23*60, 7*60

	if !IsWithinWindow(start, end, 23*60+30) {
		t.Error("23:30 debería estar dentro de 23:00-07:00")
	}
	if !IsWithinWindow(start, end, 6*60) {
		t.Error("06:00 debería estar dentro de 23:00-07:00")
	}
	if IsWithinWindow(start, end, 12*60) {
		t.Error("12:00 no debería estar dentro de 23:00-07:00")
	}
}

func TestIsWithinWindowStartEqualsEnd(t *testing.T) {
	// start == end se trata como ventana envolvente: cubre todo el día
	if !IsWithinWindow(600, 600, 0) || !IsWithinWindow(600, 600, 600) || !IsWithinWindow(600, 600, 1200) {
		t.Error("start == end debería cubrir cualquier instante")
	}
}

func TestIsActiveDay(t *testing.T) {
	if !IsActiveDay(models.RepeatDaily, time.Wednesday) || !IsActiveDay(models.RepeatDaily, time.Sunday) {
		t.Error("daily aplica todos los días")
	}
	if !IsActiveDay(models.RepeatWeekdays, time.Friday) {
		t.Error("weekdays aplica el viernes")
	}
	if IsActiveDay(models.RepeatWeekdays, time.Saturday) {
		t.Error("weekdays no aplica el sábado")
	}
	if !IsActiveDay(models.RepeatWeekends, time.Saturday) {
		t.Error("weekends aplica el sábado")
	}
	if IsActiveDay(models.RepeatWeekends, time.Monday) {
		t.Error("weekends no aplica el lunes")
	}
}

func TestLocalClockShiftsAcrossMidnight(t *testing.T) {
	// Lunes 23:30 UTC
	utc := time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)

	minute, weekday := LocalClock(utc, 2)
	if weekday != time.Tuesday {
		t.Errorf("UTC+2 debería caer en martes, fue %v", weekday)
	}
	if minute != 1*60+30 {
		t.Errorf("UTC+2 debería ser 01:30, fue el minuto %d", minute)
	}

	minute, weekday = LocalClock(utc, -5)
	if weekday != time.Monday {
		t.Errorf("UTC-5 debería seguir en lunes, fue %v", weekday)
	}
	if minute != 18*60+30 {
		t.Errorf("UTC-5 debería ser 18:30, fue el minuto %d", minute)
	}
}

func TestShouldBeLocked(t *testing.T) {
	sched := &models.UserSchedule{
		Start:  "22:00",
		End:    "06:00",
		Repeat: models.RepeatDaily,
	}

	cases := []struct {
		minute  int
		weekday time.Weekday
		want    bool
	}{
		{23 * 60, time.Monday, true},
		{5 * 60, time.Sunday, true},
		{12 * 60, time.Monday, false},
	}

	for _, c := range cases {
		got, err := ShouldBeLocked(sched, c.minute, c.weekday)
		if err != nil {
			t.Fatalf("ShouldBeLocked: error inesperado: %v", err)
		}
		if got != c.want {
			t.Errorf("ShouldBeLocked(minuto %d, %v) = %v, esperado %v", c.minute, c.weekday, got, c.want)
		}
	}
}

func TestShouldBeLockedRespectsRepeatMode(t *testing.T) {
	sched := &models.UserSchedule{
		Start:  "09:00",
		End:    "17:00",
		Repeat: models.RepeatWeekdays,
	}

	locked, err := ShouldBeLocked(sched, 12*60, time.Saturday)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if locked {
		t.Error("un horario weekdays no debería bloquear en sábado")
	}
}

func TestShouldBeLockedInvalidClock(t *testing.T) {
	sched := &models.UserSchedule{
		Start:  "99:00",
		End:    "17:00",
		Repeat: models.RepeatDaily,
	}

	if _, err := ShouldBeLocked(sched, 0, time.Monday); err == nil {
		t.Error("una hora inválida debería devolver error")
	}
}
