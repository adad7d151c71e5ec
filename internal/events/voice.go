// Package events provides event handlers for voice events
package events

import (
	"fmt"

	"github.com/PancyStudios/PancyJailGo/internal/lockout"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterVoiceEvents registers all voice-related event handlers
func RegisterVoiceEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onVoiceStateUpdate)
}

// onVoiceStateUpdate feeds every channel transition into the jail engine so
// countdowns react immediately instead of waiting for the next sweep.
func onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	oldChannelID := ""
	if v.BeforeUpdate != nil {
		oldChannelID = v.BeforeUpdate.ChannelID
	}

	// Mute/deafen toggles arrive as updates with no channel change
	if v.ChannelID == oldChannelID {
		return
	}

	isBot := false
	if v.Member != nil && v.Member.User != nil {
		isBot = v.Member.User.Bot
	} else if user, err := s.User(v.UserID); err == nil {
		isBot = user.Bot
	}

	logger.Debug(fmt.Sprintf("🔄 Voz: %s en %s (%s → %s)", v.UserID, v.GuildID, oldChannelID, v.ChannelID), "Voice")

	if engine := lockout.Get(); engine != nil {
		engine.HandleVoiceUpdate(v.GuildID, v.UserID, oldChannelID, v.ChannelID, isBot)
	}
}
