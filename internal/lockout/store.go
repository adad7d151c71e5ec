package lockout

import (
	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

// Store is the keyed document access the engine needs. Every component
// fetches through this interface instead of holding its own in-memory copy:
// the persisted record is always the authority, so mutators re-read right
// before writing and write the whole document back as a unit.
//
// *database.LockoutService is the MongoDB implementation; tests use an
// in-memory fake.
type Store interface {
	Config(guildID string) (*models.LockoutConfig, error)
	AllConfigs() ([]*models.LockoutConfig, error)
	SaveConfig(cfg *models.LockoutConfig) error

	Schedule(guildID, userID string) (*models.UserSchedule, error)
	SchedulesByGuild(guildID string) ([]*models.UserSchedule, error)
	SaveSchedule(sched *models.UserSchedule) error
	DeleteSchedule(guildID, userID string) error

	Jail(guildID, userID string) (*models.JailRecord, error)
	JailsByGuild(guildID string) ([]*models.JailRecord, error)
	AllJails() ([]*models.JailRecord, error)
	SaveJail(rec *models.JailRecord) error
	DeleteJail(guildID, userID string) error
}
