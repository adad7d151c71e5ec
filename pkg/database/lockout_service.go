// Package database - typed access layer for the lockdown collections.
// LockoutService is the State Store the engine talks to: every accessor is an
// exact-match query keyed by guild or (guild, user), one document per write.
package database

import (
	"errors"

	"github.com/PancyStudios/PancyJailGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrManagersNotInitialized = errors.New("lockout data managers not initialized")
)

// LockoutService wraps the global DataManagers for the lockdown engine.
// Jail reads go through GetFresh: the watermark discipline requires every
// mutator to re-read the authoritative record immediately before writing,
// so a cached copy is never acceptable there.
type LockoutService struct{}

// NewLockoutService returns a service bound to the global DataManagers.
func NewLockoutService() *LockoutService {
	return &LockoutService{}
}

func (s *LockoutService) ready() error {
	if GlobalLockoutConfigDM == nil || GlobalScheduleDM == nil || GlobalJailDM == nil {
		return ErrManagersNotInitialized
	}
	return nil
}

// Config returns the guild's lockdown configuration, or nil if not configured.
func (s *LockoutService) Config(guildID string) (*models.LockoutConfig, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return GlobalLockoutConfigDM.Get(bson.M{"guildId": guildID})
}

// AllConfigs returns every configured guild.
func (s *LockoutService) AllConfigs() ([]*models.LockoutConfig, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return GlobalLockoutConfigDM.GetAll(bson.M{})
}

// SaveConfig upserts a guild configuration.
func (s *LockoutService) SaveConfig(cfg *models.LockoutConfig) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := GlobalLockoutConfigDM.Set(bson.M{"guildId": cfg.GuildID}, cfg)
	return err
}

// Schedule returns the user's recurring lockout window, or nil if none.
func (s *LockoutService) Schedule(guildID, userID string) (*models.UserSchedule, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return GlobalScheduleDM.GetFresh(bson.M{"guildId": guildID, "userId": userID})
}

// SchedulesByGuild returns every schedule in a guild.
func (s *LockoutService) SchedulesByGuild(guildID string) ([]*models.UserSchedule, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return GlobalScheduleDM.GetAll(bson.M{"guildId": guildID})
}

// SaveSchedule upserts a user schedule.
func (s *LockoutService) SaveSchedule(sched *models.UserSchedule) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := GlobalScheduleDM.Set(bson.M{"guildId": sched.GuildID, "userId": sched.UserID}, sched)
	return err
}

// DeleteSchedule removes a user schedule.
func (s *LockoutService) DeleteSchedule(guildID, userID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return GlobalScheduleDM.Delete(bson.M{"guildId": guildID, "userId": userID})
}

// Jail returns the user's jail record fresh from the store, or nil if none.
func (s *LockoutService) Jail(guildID, userID string) (*models.JailRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return GlobalJailDM.GetFresh(bson.M{"guildId": guildID, "userId": userID})
}

// JailsByGuild returns every active jail record in a guild.
func (s *LockoutService) JailsByGuild(guildID string) ([]*models.JailRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return GlobalJailDM.GetAll(bson.M{"guildId": guildID})
}

// AllJails returns every active jail record across all guilds.
func (s *LockoutService) AllJails() ([]*models.JailRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return GlobalJailDM.GetAll(bson.M{})
}

// SaveJail upserts a jail record as a single document write.
func (s *LockoutService) SaveJail(rec *models.JailRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := GlobalJailDM.Set(bson.M{"guildId": rec.GuildID, "userId": rec.UserID}, rec)
	return err
}

// DeleteJail removes a jail record.
func (s *LockoutService) DeleteJail(guildID, userID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return GlobalJailDM.Delete(bson.M{"guildId": guildID, "userId": userID})
}
