// Package models defines the persisted document shapes for the lockdown system.
package models

// RepeatMode indica qué días de la semana aplica un horario de bloqueo
type RepeatMode string

const (
	RepeatDaily    RepeatMode = "daily"
	RepeatWeekdays RepeatMode = "weekdays"
	RepeatWeekends RepeatMode = "weekends"
)

// Valid reports whether the repeat mode is one of the known values.
func (r RepeatMode) Valid() bool {
	switch r {
	case RepeatDaily, RepeatWeekdays, RepeatWeekends:
		return true
	}
	return false
}

// TimeZoneBinding maps a guild role to a fixed UTC offset. Members holding the
// role have their schedules evaluated against that offset's wall clock.
type TimeZoneBinding struct {
	RoleID      string `bson:"roleId" json:"roleId"`
	OffsetHours int    `bson:"offsetHours" json:"offsetHours"`
}

// LockoutConfig representa el documento por servidor en la colección "lockout_configs"
type LockoutConfig struct {
	GuildID             string            `bson:"guildId" json:"guildId"`
	CommandChannelID    string            `bson:"commandChannelId" json:"commandChannelId"`
	JailChannelID       string            `bson:"jailChannelId" json:"jailChannelId"`
	TargetRoleID        string            `bson:"targetRoleId" json:"targetRoleId"`
	TimeZoneBindings    []TimeZoneBinding `bson:"timeZoneBindings" json:"timeZoneBindings"`
	JailStickyMessageID string            `bson:"jailStickyMessageId,omitempty" json:"jailStickyMessageId,omitempty"`
}

// UserSchedule representa el documento por (servidor, usuario) en "lockout_schedules".
// LockedByBot is the authority flag: it is set only by the schedule reconciler
// right after it removes the target role, and cleared only right after the
// reconciler restores it. Manual role changes by admins never touch it, which
// is what keeps the reconciler from fighting them.
type UserSchedule struct {
	GuildID     string     `bson:"guildId" json:"guildId"`
	UserID      string     `bson:"userId" json:"userId"`
	Start       string     `bson:"start" json:"start"` // "HH:MM"
	End         string     `bson:"end" json:"end"`     // "HH:MM"
	Repeat      RepeatMode `bson:"repeat" json:"repeat"`
	LockedByBot bool       `bson:"lockedByBot" json:"lockedByBot"`
}

// JailRecord representa el documento por (servidor, usuario) en "lockout_jail".
// LastCheck is the accrual watermark: non-nil exactly while the user is inside
// the jail voice channel. Every writer folds the elapsed time since LastCheck
// into RemainingSeconds exactly once before advancing or clearing it, so the
// periodic sweep and the voice-event handler can interleave without double
// counting or losing intervals.
type JailRecord struct {
	GuildID          string   `bson:"guildId" json:"guildId"`
	UserID           string   `bson:"userId" json:"userId"`
	TotalSeconds     float64  `bson:"totalSeconds" json:"totalSeconds"`
	RemainingSeconds float64  `bson:"remainingSeconds" json:"remainingSeconds"`
	LastCheck        *float64 `bson:"lastCheckTimestamp" json:"lastCheckTimestamp"`
}

// Counting reports whether the record is actively accruing (watermark set).
func (j *JailRecord) Counting() bool {
	return j.LastCheck != nil
}

// Elapsed returns the seconds already served.
func (j *JailRecord) Elapsed() float64 {
	return j.TotalSeconds - j.RemainingSeconds
}
