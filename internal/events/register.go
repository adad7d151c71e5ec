// Package events provides a registry for organizing bot events.
// Events are organized by category (guild, voice, ready).
package events

import (
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Member events (leave/kick)
	RegisterMemberEvents(client)

	// Voice events (jail presence tracking)
	RegisterVoiceEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
