// Package lockdown - /lockdown timeout and /lockdown untimeout commands
package lockdown

import (
	"fmt"

	"github.com/PancyStudios/PancyJailGo/internal/lockout"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createTimeoutCommand creates the /lockdown timeout subcommand
func createTimeoutCommand() *discord.Command {
	return discord.NewCommand(
		"timeout",
		"Envía a un usuario a la cárcel por un tiempo",
		"lockdown",
		timeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a encarcelar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "duracion",
			Description: "Duración en minutos",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    40320, // 28 days max
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

// timeoutHandler handles the /lockdown timeout command
func timeoutHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		user := ctx.GetUserOption("usuario")
		if user == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}
		if user.Bot {
			ctx.ReplyEphemeral("❌ No puedes encarcelar a un bot.")
			return
		}

		duration := ctx.GetIntOption("duracion")
		if duration < 1 {
			ctx.ReplyEphemeral("❌ La duración debe ser al menos 1 minuto.")
			return
		}

		engine := lockout.Get()
		if engine == nil {
			ctx.ReplyEphemeral("❌ El motor de lockdown no está activo.")
			return
		}

		if err := engine.SendToJail(ctx.Interaction.GuildID, user.ID, int(duration)); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error encarcelando: %v", err))
			return
		}

		ctx.Reply(fmt.Sprintf(
			"🔒 **%s** ha sido enviado a la cárcel por %d minutos.\n"+
				"El tiempo solo corre mientras esté en el canal de cárcel.",
			user.Username, duration,
		))
	}()
	return nil
}

// createUntimeoutCommand creates the /lockdown untimeout subcommand
func createUntimeoutCommand() *discord.Command {
	return discord.NewCommand(
		"untimeout",
		"Libera a un usuario de la cárcel antes de tiempo",
		"lockdown",
		untimeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a liberar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

// untimeoutHandler handles the /lockdown untimeout command
func untimeoutHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		user := ctx.GetUserOption("usuario")
		if user == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}

		engine := lockout.Get()
		if engine == nil {
			ctx.ReplyEphemeral("❌ El motor de lockdown no está activo.")
			return
		}

		released, err := engine.ReleaseUser(ctx.Interaction.GuildID, user.ID)
		if err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error liberando: %v", err))
			return
		}
		if !released {
			ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ **%s** no está en la cárcel.", user.Username))
			return
		}

		ctx.Reply(fmt.Sprintf("🔓 **%s** ha sido liberado.", user.Username))
	}()
	return nil
}
