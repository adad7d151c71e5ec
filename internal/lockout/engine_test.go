package lockout

import (
	"sync"
	"testing"

	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

// memStore is the in-memory Store used by the engine tests.
type memStore struct {
	mu        sync.Mutex
	configs   map[string]*models.LockoutConfig
	schedules map[string]*models.UserSchedule
	jails     map[string]*models.JailRecord
}

func newMemStore() *memStore {
	return &memStore{
		configs:   make(map[string]*models.LockoutConfig),
		schedules: make(map[string]*models.UserSchedule),
		jails:     make(map[string]*models.JailRecord),
	}
}

func key(guildID, userID string) string { return guildID + "/" + userID }

func (m *memStore) Config(guildID string) (*models.LockoutConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configs[guildID], nil
}

func (m *memStore) AllConfigs() ([]*models.LockoutConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.LockoutConfig, 0, len(m.configs))
	for _, cfg := range m.configs {
		out = append(out, cfg)
	}
	return out, nil
}

func (m *memStore) SaveConfig(cfg *models.LockoutConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.GuildID] = cfg
	return nil
}

func (m *memStore) Schedule(guildID, userID string) (*models.UserSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedules[key(guildID, userID)], nil
}

func (m *memStore) SchedulesByGuild(guildID string) ([]*models.UserSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.UserSchedule
	for _, sched := range m.schedules {
		if sched.GuildID == guildID {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (m *memStore) SaveSchedule(sched *models.UserSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[key(sched.GuildID, sched.UserID)] = sched
	return nil
}

func (m *memStore) DeleteSchedule(guildID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, key(guildID, userID))
	return nil
}

func (m *memStore) Jail(guildID, userID string) (*models.JailRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jails[key(guildID, userID)], nil
}

func (m *memStore) JailsByGuild(guildID string) ([]*models.JailRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.JailRecord
	for _, rec := range m.jails {
		if rec.GuildID == guildID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) AllJails() ([]*models.JailRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.JailRecord, 0, len(m.jails))
	for _, rec := range m.jails {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memStore) SaveJail(rec *models.JailRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jails[key(rec.GuildID, rec.UserID)] = rec
	return nil
}

func (m *memStore) DeleteJail(guildID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jails, key(guildID, userID))
	return nil
}

func testEngine(store Store) *Engine {
	return &Engine{
		store:        store,
		minOccupancy: 2,
		done:         make(chan struct{}),
	}
}

func testConfig() *models.LockoutConfig {
	return &models.LockoutConfig{
		GuildID:       "g1",
		JailChannelID: "jail-vc",
		TargetRoleID:  "role-1",
	}
}

func TestTickRecordSkipsWhenGateClosed(t *testing.T) {
	store := newMemStore()
	engine := testEngine(store)

	mark := unixNow() - 60
	store.SaveJail(&models.JailRecord{
		GuildID: "g1", UserID: "u1",
		TotalSeconds: 600, RemainingSeconds: 600,
		LastCheck: &mark,
	})

	if refreshed := engine.tickRecord(testConfig(), "u1", false); refreshed {
		t.Error("con la puerta cerrada el tick no debe tocar el tablón")
	}

	rec, _ := store.Jail("g1", "u1")
	if rec.RemainingSeconds != 600 {
		t.Errorf("con la puerta cerrada no se descuenta tiempo: quedan %v", rec.RemainingSeconds)
	}
	if *rec.LastCheck != mark {
		t.Error("con la puerta cerrada la marca de agua no debe avanzar")
	}
}

func TestTickRecordAccruesWhenGateOpen(t *testing.T) {
	store := newMemStore()
	engine := testEngine(store)

	mark := unixNow() - 30
	store.SaveJail(&models.JailRecord{
		GuildID: "g1", UserID: "u1",
		TotalSeconds: 600, RemainingSeconds: 600,
		LastCheck: &mark,
	})

	if refreshed := engine.tickRecord(testConfig(), "u1", true); !refreshed {
		t.Error("un tick que descuenta tiempo debe refrescar el tablón")
	}

	rec, _ := store.Jail("g1", "u1")
	if rec.RemainingSeconds >= 600 || rec.RemainingSeconds < 560 {
		t.Errorf("deberían haberse descontado ~30s, quedan %v", rec.RemainingSeconds)
	}
	if *rec.LastCheck <= mark {
		t.Error("la marca de agua debe avanzar tras el tick")
	}
}

func TestTickRecordIgnoresPausedRecords(t *testing.T) {
	store := newMemStore()
	engine := testEngine(store)

	store.SaveJail(&models.JailRecord{
		GuildID: "g1", UserID: "u1",
		TotalSeconds: 600, RemainingSeconds: 600,
	})

	if refreshed := engine.tickRecord(testConfig(), "u1", true); refreshed {
		t.Error("un registro pausado no cambia nada")
	}

	rec, _ := store.Jail("g1", "u1")
	if rec.RemainingSeconds != 600 || rec.LastCheck != nil {
		t.Error("un registro pausado debe quedar intacto")
	}
}

func TestTickRecordMissingRecord(t *testing.T) {
	store := newMemStore()
	engine := testEngine(store)

	// El registro desapareció entre el listado y la relectura
	if refreshed := engine.tickRecord(testConfig(), "ghost", true); refreshed {
		t.Error("un registro inexistente se ignora")
	}
}

func TestPauseInmateFoldsAndClearsWatermark(t *testing.T) {
	store := newMemStore()
	engine := testEngine(store)

	mark := unixNow() - 40
	store.SaveJail(&models.JailRecord{
		GuildID: "g1", UserID: "u1",
		TotalSeconds: 600, RemainingSeconds: 600,
		LastCheck: &mark,
	})

	engine.PauseInmate("g1", "u1")

	rec, _ := store.Jail("g1", "u1")
	if rec.LastCheck != nil {
		t.Error("pausar debe limpiar la marca de agua")
	}
	if rec.RemainingSeconds >= 600 || rec.RemainingSeconds < 550 {
		t.Errorf("pausar debe plegar ~40s antes de detenerse, quedan %v", rec.RemainingSeconds)
	}

	// Pausar dos veces no descuenta nada más
	before := rec.RemainingSeconds
	engine.PauseInmate("g1", "u1")
	rec, _ = store.Jail("g1", "u1")
	if rec.RemainingSeconds != before {
		t.Error("pausar un registro ya pausado no cambia el restante")
	}
}

func TestNewJailRecordWatermark(t *testing.T) {
	now := unixNow()

	// Fuera del canal: el contador arranca en su próxima entrada
	rec := newJailRecord("g1", "u1", 10, false, now)
	if rec.LastCheck != nil {
		t.Error("fuera de la cárcel el registro nace sin marca de agua")
	}
	if rec.TotalSeconds != 600 || rec.RemainingSeconds != 600 {
		t.Errorf("10 minutos son 600s totales y restantes, fue %v/%v", rec.RemainingSeconds, rec.TotalSeconds)
	}

	// Ya dentro del canal: nunca habrá evento de entrada, la marca
	// arranca en la creación
	rec = newJailRecord("g1", "u1", 10, true, now)
	if rec.LastCheck == nil || *rec.LastCheck != now {
		t.Error("dentro de la cárcel la marca de agua arranca en la creación")
	}
}

func TestBindingForPicksFirstMatchingRole(t *testing.T) {
	cfg := testConfig()
	cfg.TimeZoneBindings = []models.TimeZoneBinding{
		{RoleID: "tz-mx", OffsetHours: -6},
		{RoleID: "tz-es", OffsetHours: 2},
	}

	binding := bindingFor(cfg, []string{"otra", "tz-es"})
	if binding == nil || binding.OffsetHours != 2 {
		t.Fatalf("debería resolver el binding de tz-es, fue %+v", binding)
	}

	if bindingFor(cfg, []string{"sin-zona"}) != nil {
		t.Error("sin rol de zona horaria no hay binding")
	}

	// Con varios roles de zona gana el primero declarado en la config
	binding = bindingFor(cfg, []string{"tz-es", "tz-mx"})
	if binding == nil || binding.RoleID != "tz-mx" {
		t.Errorf("el orden de la config decide el empate, fue %+v", binding)
	}
}

func TestContainsRole(t *testing.T) {
	roles := []string{"a", "b", "c"}
	if !containsRole(roles, "b") {
		t.Error("containsRole debería encontrar el rol")
	}
	if containsRole(roles, "z") {
		t.Error("containsRole no debería inventar roles")
	}
	if containsRole(nil, "a") {
		t.Error("una lista vacía no contiene nada")
	}
}
