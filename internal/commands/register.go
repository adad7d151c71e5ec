// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (lockdown, utils, dev).
package commands

import (
	"github.com/PancyStudios/PancyJailGo/internal/commands/dev"
	"github.com/PancyStudios/PancyJailGo/internal/commands/lockdown"
	"github.com/PancyStudios/PancyJailGo/internal/commands/utils"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands
	utils.RegisterUtilsCommands(client)

	// Lockdown commands (/lockdown set-lockout, schedule-*, timeout, timezone ...)
	lockdown.RegisterLockdownCommands(client)

	// Dev-only commands (registered in the dev guild)
	dev.Register(client)
}
