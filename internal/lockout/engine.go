package lockout

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyJailGo/pkg/logger"
	"github.com/PancyStudios/PancyJailGo/pkg/models"
	"github.com/PancyStudios/PancyJailGo/pkg/mqtt"
	"github.com/bwmarrin/discordgo"
)

// ErrNotConfigured indicates a guild has no lockdown configuration yet.
var ErrNotConfigured = errors.New("el servidor no tiene configurado el sistema de lockdown")

// Engine is the reconciliation driver. A single ticker sweeps jail records
// and schedules across all guilds; the voice event handler feeds presence
// transitions in between ticks through the same primitives.
//
// The source of truth is always the persisted record: both writers re-read
// it right before mutating and persist the whole document before moving on.
// A mutex serializes the two writers — the watermark discipline makes their
// interleavings add up correctly, the mutex only prevents a torn
// read-modify-write on the same record.
type Engine struct {
	session      *discordgo.Session
	store        Store
	tickPeriod   time.Duration
	minOccupancy int

	mu       sync.Mutex
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

var (
	engine  *Engine
	engOnce sync.Once
)

// Init initializes the global engine instance
func Init(session *discordgo.Session, store Store, tickSeconds, minOccupancy int) *Engine {
	engOnce.Do(func() {
		engine = &Engine{
			session:      session,
			store:        store,
			tickPeriod:   time.Duration(tickSeconds) * time.Second,
			minOccupancy: minOccupancy,
			done:         make(chan struct{}),
		}
	})
	return engine
}

// Get returns the global engine instance
func Get() *Engine {
	return engine
}

// unixNow returns the current time as unix seconds with sub-second precision,
// matching the float timestamps persisted in the jail records.
func unixNow() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// Start launches the reconciliation loop.
func (e *Engine) Start() {
	e.ticker = time.NewTicker(e.tickPeriod)

	go func() {
		for {
			select {
			case <-e.done:
				return
			case <-e.ticker.C:
				e.runTick()
			}
		}
	}()

	logger.System(fmt.Sprintf("Motor de lockdown iniciado (tick cada %v, ocupación mínima %d)", e.tickPeriod, e.minOccupancy), "Lockdown")
}

// Stop terminates the reconciliation loop. The current tick finishes the
// record it is processing before the loop observes the shutdown.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		if e.ticker != nil {
			e.ticker.Stop()
		}
		close(e.done)
	})
	logger.System("Motor de lockdown detenido", "Lockdown")
}

// runTick performs one full reconciliation sweep. Every unit of work is
// isolated: one failing guild or user never aborts the rest of the sweep.
func (e *Engine) runTick() {
	refresh := make(map[string]bool)

	// Jail sweep
	records, err := e.store.AllJails()
	if err != nil {
		logger.Error("Error leyendo registros de cárcel: "+err.Error(), "Lockdown")
	} else {
		byGuild := make(map[string][]*models.JailRecord)
		for _, rec := range records {
			byGuild[rec.GuildID] = append(byGuild[rec.GuildID], rec)
		}

		for guildID, recs := range byGuild {
			cfg, err := e.store.Config(guildID)
			if err != nil || cfg == nil || cfg.JailChannelID == "" {
				continue
			}

			// Solitary confinement without an audience does not count down:
			// the whole guild's accrual is suspended for this tick when the
			// jail channel holds fewer than minOccupancy non-bot members.
			gateOpen := e.jailOccupancy(guildID, cfg.JailChannelID) >= e.minOccupancy

			for _, rec := range recs {
				if e.tickRecord(cfg, rec.UserID, gateOpen) {
					refresh[guildID] = true
				}
			}
		}
	}

	// Schedule sweep runs for every configured guild, independent of jail
	// activity
	configs, err := e.store.AllConfigs()
	if err != nil {
		logger.Error("Error leyendo configuraciones de lockdown: "+err.Error(), "Lockdown")
	} else {
		nowUTC := time.Now().UTC()
		for _, cfg := range configs {
			e.reconcileSchedules(cfg, nowUTC)
		}
	}

	for guildID := range refresh {
		e.RefreshBoard(guildID)
	}
}

// tickRecord advances one inmate's countdown. Reports whether the guild's
// board needs a refresh.
func (e *Engine) tickRecord(cfg *models.LockoutConfig, userID string, gateOpen bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-read the authoritative record: a voice event may have touched it
	// since the sweep listed it
	rec, err := e.store.Jail(cfg.GuildID, userID)
	if err != nil || rec == nil {
		return false
	}
	if !rec.Counting() {
		return false
	}
	if !gateOpen {
		// Skip without advancing the watermark; the inmate does not lose
		// the interval, it is folded in once the audience returns
		return false
	}

	status := Accrue(rec, unixNow())
	if status == StatusReleased {
		e.release(cfg, rec, "ha cumplido su condena")
		return true
	}

	if err := e.store.SaveJail(rec); err != nil {
		logger.Error(fmt.Sprintf("Error guardando registro de cárcel de %s: %v", userID, err), "Lockdown")
		return false
	}
	return true
}

// release performs the side effects of a completed or revoked sentence.
// Everything is best-effort: the record deletion is the authoritative part,
// the role restore and the notification may fail without retry.
func (e *Engine) release(cfg *models.LockoutConfig, rec *models.JailRecord, reason string) {
	if err := e.store.DeleteJail(rec.GuildID, rec.UserID); err != nil {
		logger.Error(fmt.Sprintf("Error eliminando registro de cárcel de %s: %v", rec.UserID, err), "Lockdown")
	}

	if cfg.TargetRoleID != "" {
		if err := e.session.GuildMemberRoleAdd(rec.GuildID, rec.UserID, cfg.TargetRoleID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo restaurar el rol a %s: %v", rec.UserID, err), "Lockdown")
		}
	}

	if cfg.JailChannelID != "" {
		msg := fmt.Sprintf("🔓 <@%s> %s y ha sido liberado.", rec.UserID, reason)
		if _, err := e.session.ChannelMessageSend(cfg.JailChannelID, msg); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo notificar la liberación de %s: %v", rec.UserID, err), "Lockdown")
		}
	}

	mqtt.PublishJailEvent("released", rec.GuildID, rec.UserID, rec.TotalSeconds)
	logger.Info(fmt.Sprintf("🔓 Usuario %s liberado en %s (%s)", rec.UserID, rec.GuildID, reason), "Lockdown")
}

// newJailRecord builds a fresh sentence record. A member already sitting in
// the jail channel gets the watermark at creation: no enter event will ever
// fire for them, so waiting for one would leave the sentence paused forever.
func newJailRecord(guildID, userID string, minutes int, inJail bool, now float64) *models.JailRecord {
	total := float64(minutes) * 60
	rec := &models.JailRecord{
		GuildID:          guildID,
		UserID:           userID,
		TotalSeconds:     total,
		RemainingSeconds: total,
	}
	if inJail {
		rec.LastCheck = &now
	}
	return rec
}

// SendToJail creates a jail record for a member and removes their capability
// role. If the member is already sitting in the jail channel the watermark
// starts immediately; otherwise it starts on their next enter event.
func (e *Engine) SendToJail(guildID, userID string, minutes int) error {
	cfg, err := e.store.Config(guildID)
	if err != nil {
		return err
	}
	if cfg == nil || cfg.JailChannelID == "" {
		return ErrNotConfigured
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	inJail := e.userInChannel(guildID, userID, cfg.JailChannelID)
	rec := newJailRecord(guildID, userID, minutes, inJail, unixNow())

	if err := e.store.SaveJail(rec); err != nil {
		return err
	}

	if cfg.TargetRoleID != "" {
		if err := e.session.GuildMemberRoleRemove(guildID, userID, cfg.TargetRoleID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo retirar el rol a %s: %v", userID, err), "Lockdown")
		}
	}

	mqtt.PublishJailEvent("jailed", guildID, userID, rec.TotalSeconds)
	logger.Info(fmt.Sprintf("🔒 Usuario %s encarcelado en %s por %d minutos", userID, guildID, minutes), "Lockdown")

	e.RefreshBoard(guildID)
	return nil
}

// ReleaseUser revokes a sentence early. Returns false when the member had no
// active jail record.
func (e *Engine) ReleaseUser(guildID, userID string) (bool, error) {
	cfg, err := e.store.Config(guildID)
	if err != nil {
		return false, err
	}
	if cfg == nil {
		return false, ErrNotConfigured
	}

	e.mu.Lock()
	rec, err := e.store.Jail(guildID, userID)
	if err != nil {
		e.mu.Unlock()
		return false, err
	}
	if rec == nil {
		e.mu.Unlock()
		return false, nil
	}
	e.release(cfg, rec, "ha sido indultado")
	e.mu.Unlock()

	e.RefreshBoard(guildID)
	return true, nil
}

// HandleVoiceUpdate bridges a presence change into the jail timer
// immediately instead of waiting for the next tick.
func (e *Engine) HandleVoiceUpdate(guildID, userID, oldChannelID, newChannelID string, isBot bool) {
	if isBot || guildID == "" {
		return
	}

	cfg, err := e.store.Config(guildID)
	if err != nil || cfg == nil || cfg.JailChannelID == "" {
		return
	}

	entered := newChannelID == cfg.JailChannelID && oldChannelID != cfg.JailChannelID
	exited := oldChannelID == cfg.JailChannelID && newChannelID != cfg.JailChannelID
	if !entered && !exited {
		return
	}

	e.mu.Lock()
	rec, err := e.store.Jail(guildID, userID)
	if err != nil || rec == nil {
		e.mu.Unlock()
		return
	}

	now := unixNow()
	if entered {
		OnPresenceEnter(rec, now)
		if err := e.store.SaveJail(rec); err != nil {
			logger.Error(fmt.Sprintf("Error guardando entrada de %s: %v", userID, err), "Lockdown")
		}
	} else {
		status := OnPresenceExit(rec, now)
		if status == StatusReleased {
			e.release(cfg, rec, "ha cumplido su condena")
		} else if err := e.store.SaveJail(rec); err != nil {
			logger.Error(fmt.Sprintf("Error guardando salida de %s: %v", userID, err), "Lockdown")
		}
	}
	e.mu.Unlock()

	e.RefreshBoard(guildID)
}

// PauseInmate performs a final accrual and clears the watermark. Used when
// the inmate's presence ended without a clean voice exit event (left the
// guild, was kicked).
func (e *Engine) PauseInmate(guildID, userID string) {
	e.mu.Lock()
	rec, err := e.store.Jail(guildID, userID)
	if err != nil || rec == nil || !rec.Counting() {
		e.mu.Unlock()
		return
	}

	status := OnPresenceExit(rec, unixNow())
	if status == StatusReleased {
		if cfg, err := e.store.Config(guildID); err == nil && cfg != nil {
			e.release(cfg, rec, "ha cumplido su condena")
		}
	} else if err := e.store.SaveJail(rec); err != nil {
		logger.Error(fmt.Sprintf("Error pausando registro de %s: %v", userID, err), "Lockdown")
	}
	e.mu.Unlock()

	e.RefreshBoard(guildID)
}

// reconcileSchedules applies the lockout transition table to every scheduled
// member of a guild.
func (e *Engine) reconcileSchedules(cfg *models.LockoutConfig, nowUTC time.Time) {
	if cfg.TargetRoleID == "" || len(cfg.TimeZoneBindings) == 0 {
		return
	}

	schedules, err := e.store.SchedulesByGuild(cfg.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error leyendo horarios de %s: %v", cfg.GuildID, err), "Lockdown")
		return
	}

	for _, sched := range schedules {
		// Jail takes precedence: schedules are skipped entirely for inmates
		if rec, err := e.store.Jail(cfg.GuildID, sched.UserID); err != nil || rec != nil {
			continue
		}

		member, err := e.member(cfg.GuildID, sched.UserID)
		if err != nil {
			// Missing entity: skip this unit for the tick, no retry
			continue
		}

		binding := bindingFor(cfg, member.Roles)
		if binding == nil {
			continue
		}

		localMinute, weekday := LocalClock(nowUTC, binding.OffsetHours)
		should, err := ShouldBeLocked(sched, localMinute, weekday)
		if err != nil {
			logger.Warn(fmt.Sprintf("Horario inválido de %s: %v", sched.UserID, err), "Lockdown")
			continue
		}

		hasGrant := containsRole(member.Roles, cfg.TargetRoleID)

		switch ScheduleAction(should, hasGrant, sched.LockedByBot) {
		case OpLock:
			// Permission failures are swallowed: the flag is persisted
			// anyway so stored intent never drifts from what the engine
			// decided, and the role is retried naturally next tick
			if err := e.session.GuildMemberRoleRemove(cfg.GuildID, sched.UserID, cfg.TargetRoleID); err != nil {
				logger.Warn(fmt.Sprintf("No se pudo retirar el rol a %s: %v", sched.UserID, err), "Lockdown")
			}
			sched.LockedByBot = true
			if err := e.store.SaveSchedule(sched); err != nil {
				logger.Error(fmt.Sprintf("Error guardando horario de %s: %v", sched.UserID, err), "Lockdown")
			}
		case OpUnlock:
			if err := e.session.GuildMemberRoleAdd(cfg.GuildID, sched.UserID, cfg.TargetRoleID); err != nil {
				logger.Warn(fmt.Sprintf("No se pudo restaurar el rol a %s: %v", sched.UserID, err), "Lockdown")
			}
			sched.LockedByBot = false
			if err := e.store.SaveSchedule(sched); err != nil {
				logger.Error(fmt.Sprintf("Error guardando horario de %s: %v", sched.UserID, err), "Lockdown")
			}
		}
	}
}

// RefreshBoard keeps exactly one live status message per guild, stuck to the
// bottom of the jail channel.
func (e *Engine) RefreshBoard(guildID string) {
	cfg, err := e.store.Config(guildID)
	if err != nil || cfg == nil || cfg.JailChannelID == "" {
		return
	}

	records, err := e.store.JailsByGuild(guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error leyendo registros para el tablón de %s: %v", guildID, err), "Lockdown")
		return
	}

	// Nobody jailed: take the board down
	if len(records) == 0 {
		if cfg.JailStickyMessageID != "" {
			if err := e.session.ChannelMessageDelete(cfg.JailChannelID, cfg.JailStickyMessageID); err != nil {
				// Stale reference: the message is already gone
				logger.Debug(fmt.Sprintf("Tablón de %s ya no existe: %v", guildID, err), "Lockdown")
			}
			cfg.JailStickyMessageID = ""
			if err := e.store.SaveConfig(cfg); err != nil {
				logger.Error(fmt.Sprintf("Error limpiando tablón de %s: %v", guildID, err), "Lockdown")
			}
		}
		return
	}

	content := RenderBoard(records, unixNow())

	latest, err := e.session.ChannelMessages(cfg.JailChannelID, 1, "", "", "")
	if err != nil {
		logger.Warn(fmt.Sprintf("Error consultando el canal de cárcel de %s: %v", guildID, err), "Lockdown")
		return
	}

	// Board still at the bottom: edit in place, and only when it changed
	if cfg.JailStickyMessageID != "" && len(latest) > 0 && latest[0].ID == cfg.JailStickyMessageID {
		if latest[0].Content == content {
			return
		}
		if _, err := e.session.ChannelMessageEdit(cfg.JailChannelID, cfg.JailStickyMessageID, content); err == nil {
			return
		}
		// Edit failed: treat the message as gone and fall through to repost
	}

	// Newer activity (or no board yet): delete the stale board and post a
	// fresh one at the bottom
	if cfg.JailStickyMessageID != "" {
		_ = e.session.ChannelMessageDelete(cfg.JailChannelID, cfg.JailStickyMessageID)
	}

	msg, err := e.session.ChannelMessageSend(cfg.JailChannelID, content)
	if err != nil {
		logger.Warn(fmt.Sprintf("Error publicando el tablón de %s: %v", guildID, err), "Lockdown")
		return
	}

	cfg.JailStickyMessageID = msg.ID
	if err := e.store.SaveConfig(cfg); err != nil {
		logger.Error(fmt.Sprintf("Error guardando id del tablón de %s: %v", guildID, err), "Lockdown")
	}
}

// jailOccupancy counts the non-bot members currently inside the jail voice
// channel. Members we cannot resolve do not count toward the audience.
func (e *Engine) jailOccupancy(guildID, channelID string) int {
	guild, err := e.session.State.Guild(guildID)
	if err != nil {
		return 0
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		member, err := e.member(guildID, vs.UserID)
		if err != nil || member.User == nil || member.User.Bot {
			continue
		}
		count++
	}
	return count
}

// userInChannel reports whether a member is currently in the given voice channel.
func (e *Engine) userInChannel(guildID, userID, channelID string) bool {
	guild, err := e.session.State.Guild(guildID)
	if err != nil {
		return false
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID == channelID
		}
	}
	return false
}

// member resolves a guild member from the state cache, falling back to the API.
func (e *Engine) member(guildID, userID string) (*discordgo.Member, error) {
	if m, err := e.session.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	return e.session.GuildMember(guildID, userID)
}

// bindingFor returns the first timezone binding whose role the member holds.
func bindingFor(cfg *models.LockoutConfig, roles []string) *models.TimeZoneBinding {
	for i := range cfg.TimeZoneBindings {
		if containsRole(roles, cfg.TimeZoneBindings[i].RoleID) {
			return &cfg.TimeZoneBindings[i]
		}
	}
	return nil
}

func containsRole(roles []string, roleID string) bool {
	for _, r := range roles {
		if r == roleID {
			return true
		}
	}
	return false
}
