// Package lockdown - /lockdown timezone add/remove/list commands
package lockdown

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyJailGo/pkg/database"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/errors"
	"github.com/PancyStudios/PancyJailGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createTimezoneAddCommand creates the /lockdown timezone add subcommand
func createTimezoneAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Asocia un rol a un desfase horario UTC",
		"lockdown",
		timezoneAddHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol de zona horaria",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "desfase",
			Description: "Desfase en horas respecto a UTC (-12 a 14)",
			Required:    true,
			MinValue:    func() *float64 { v := -12.0; return &v }(),
			MaxValue:    14,
		},
	).WithUserPermissions(discordgo.PermissionManageRoles)
}

// timezoneAddHandler handles the /lockdown timezone add command
func timezoneAddHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		role := ctx.GetRoleOption("rol")
		if role == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un rol.")
			return
		}
		offset := int(ctx.GetIntOption("desfase"))

		svc := database.NewLockoutService()

		cfg, err := svc.Config(ctx.Interaction.GuildID)
		if err != nil || cfg == nil {
			ctx.ReplyEphemeral("❌ Configura primero el sistema con `/lockdown set-lockout`.")
			return
		}

		// Re-binding an existing role updates its offset in place
		updated := false
		for i := range cfg.TimeZoneBindings {
			if cfg.TimeZoneBindings[i].RoleID == role.ID {
				cfg.TimeZoneBindings[i].OffsetHours = offset
				updated = true
				break
			}
		}
		if !updated {
			cfg.TimeZoneBindings = append(cfg.TimeZoneBindings, models.TimeZoneBinding{
				RoleID:      role.ID,
				OffsetHours: offset,
			})
		}

		if err := svc.SaveConfig(cfg); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error guardando la zona horaria: %v", err))
			return
		}

		ctx.Reply(fmt.Sprintf("🌍 Rol <@&%s> asociado a UTC%+d.", role.ID, offset))
	}()
	return nil
}

// createTimezoneRemoveCommand creates the /lockdown timezone remove subcommand
func createTimezoneRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Elimina la zona horaria asociada a un rol",
		"lockdown",
		timezoneRemoveHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol de zona horaria a eliminar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionManageRoles)
}

// timezoneRemoveHandler handles the /lockdown timezone remove command
func timezoneRemoveHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		role := ctx.GetRoleOption("rol")
		if role == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un rol.")
			return
		}

		svc := database.NewLockoutService()

		cfg, err := svc.Config(ctx.Interaction.GuildID)
		if err != nil || cfg == nil {
			ctx.ReplyEphemeral("❌ El sistema no está configurado.")
			return
		}

		found := false
		kept := cfg.TimeZoneBindings[:0]
		for _, binding := range cfg.TimeZoneBindings {
			if binding.RoleID == role.ID {
				found = true
				continue
			}
			kept = append(kept, binding)
		}
		cfg.TimeZoneBindings = kept

		if !found {
			ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ El rol <@&%s> no tiene zona horaria asociada.", role.ID))
			return
		}

		if err := svc.SaveConfig(cfg); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error guardando la configuración: %v", err))
			return
		}

		ctx.Reply(fmt.Sprintf("🗑️ Zona horaria del rol <@&%s> eliminada.", role.ID))
	}()
	return nil
}

// createTimezoneListCommand creates the /lockdown timezone list subcommand
func createTimezoneListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Lista las zonas horarias configuradas",
		"lockdown",
		timezoneListHandler,
	)
}

// timezoneListHandler handles the /lockdown timezone list command
func timezoneListHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		svc := database.NewLockoutService()

		cfg, err := svc.Config(ctx.Interaction.GuildID)
		if err != nil || cfg == nil || len(cfg.TimeZoneBindings) == 0 {
			ctx.ReplyEphemeral("ℹ️ No hay zonas horarias configuradas.")
			return
		}

		var b strings.Builder
		b.WriteString("🌍 **Zonas horarias**\n")
		for _, binding := range cfg.TimeZoneBindings {
			b.WriteString(fmt.Sprintf("• <@&%s> → UTC%+d\n", binding.RoleID, binding.OffsetHours))
		}

		ctx.Reply(b.String())
	}()
	return nil
}
