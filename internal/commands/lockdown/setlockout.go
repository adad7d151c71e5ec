// Package lockdown - /lockdown set-lockout command
package lockdown

import (
	"fmt"

	"github.com/PancyStudios/PancyJailGo/pkg/database"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/errors"
	"github.com/PancyStudios/PancyJailGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createSetLockoutCommand creates the /lockdown set-lockout subcommand
func createSetLockoutCommand() *discord.Command {
	return discord.NewCommand(
		"set-lockout",
		"Configura los canales y el rol objetivo del sistema",
		"lockdown",
		setLockoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal-comandos",
			Description: "Canal donde se aceptan los comandos de lockdown",
			Required:    true,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal-carcel",
			Description: "Canal de voz que funciona como cárcel",
			Required:    true,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildVoice,
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol que el sistema quita y devuelve",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

// setLockoutHandler handles the /lockdown set-lockout command
func setLockoutHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !ctx.IsAdmin() {
			ctx.ReplyEphemeral("❌ Necesitas permisos de administrador.")
			return
		}

		commandChannel := ctx.GetChannelOption("canal-comandos")
		jailChannel := ctx.GetChannelOption("canal-carcel")
		role := ctx.GetRoleOption("rol")

		if commandChannel == nil || jailChannel == nil || role == nil {
			ctx.ReplyEphemeral("❌ Debes especificar ambos canales y el rol.")
			return
		}

		svc := database.NewLockoutService()

		// Preserve existing bindings and sticky reference when reconfiguring
		cfg, err := svc.Config(ctx.Interaction.GuildID)
		if err != nil || cfg == nil {
			cfg = &models.LockoutConfig{GuildID: ctx.Interaction.GuildID}
		}

		cfg.CommandChannelID = commandChannel.ID
		cfg.JailChannelID = jailChannel.ID
		cfg.TargetRoleID = role.ID

		if err := svc.SaveConfig(cfg); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error guardando la configuración: %v", err))
			return
		}

		ctx.Reply(fmt.Sprintf(
			"✅ **Sistema configurado**\n"+
				"• Canal de comandos: <#%s>\n"+
				"• Canal de cárcel: <#%s>\n"+
				"• Rol objetivo: <@&%s>",
			commandChannel.ID,
			jailChannel.ID,
			role.ID,
		))
	}()
	return nil
}
