// Package lockdown provides the /lockdown command group: guild setup,
// per-user schedules, jail sentences and timezone role bindings.
// Each command is in its own file for better organization.
package lockdown

import (
	"fmt"

	"github.com/PancyStudios/PancyJailGo/pkg/database"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
)

// RegisterLockdownCommands registers all lockdown commands as /lockdown subcommands
func RegisterLockdownCommands(client *discord.ExtendedClient) {
	// Create individual subcommands (each can be in its own file)
	setLockoutCmd := createSetLockoutCommand()
	scheduleSetCmd := createScheduleSetCommand()
	scheduleViewCmd := createScheduleViewCommand()
	scheduleClearCmd := createScheduleClearCommand()
	timeoutCmd := createTimeoutCommand()
	untimeoutCmd := createUntimeoutCommand()

	// Timezone bindings live in their own subcommand group
	timezoneGroup := client.CommandHandler.BuildSubcommandGroup(
		"lockdown",
		"timezone",
		"Zonas horarias por rol",
		createTimezoneAddCommand(),
		createTimezoneRemoveCommand(),
		createTimezoneListCommand(),
	)

	// Build the /lockdown command group with all subcommands
	lockdownGroup := client.CommandHandler.BuildCommandGroup(
		"lockdown",
		"Sistema de bloqueo de rol y cárcel",
		setLockoutCmd,
		scheduleSetCmd,
		scheduleViewCmd,
		scheduleClearCmd,
		timeoutCmd,
		untimeoutCmd,
	)
	lockdownGroup.Options = append(lockdownGroup.Options, timezoneGroup)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(lockdownGroup)
}

// inCommandChannel enforces the configured command channel. Commands that
// manage the system only work there; everywhere else the member gets an
// ephemeral redirect. Guilds without a configured channel are not gated.
func inCommandChannel(ctx *discord.CommandContext) bool {
	svc := database.NewLockoutService()

	cfg, err := svc.Config(ctx.Interaction.GuildID)
	if err != nil || cfg == nil || cfg.CommandChannelID == "" {
		return true
	}

	if ctx.Interaction.ChannelID == cfg.CommandChannelID {
		return true
	}

	ctx.ReplyEphemeral(fmt.Sprintf("❌ Este comando solo puede usarse en <#%s>.", cfg.CommandChannelID))
	return false
}
