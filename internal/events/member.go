// Package events provides event handlers for member events
package events

import (
	"fmt"

	"github.com/PancyStudios/PancyJailGo/internal/lockout"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberRemove)
}

// onGuildMemberRemove pauses an inmate's countdown when they leave the guild.
// Leaving tears down the voice connection without a clean exit event, so the
// engine gets told explicitly; the record itself stays and resumes if the
// member comes back.
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Debug(fmt.Sprintf("➖ Miembro %s salió de %s", m.User.ID, m.GuildID), "Member")

	if engine := lockout.Get(); engine != nil {
		engine.PauseInmate(m.GuildID, m.User.ID)
	}
}
