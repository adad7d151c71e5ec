// Package lockdown - /lockdown schedule-set, schedule-view and schedule-clear commands
package lockdown

import (
	"fmt"

	"github.com/PancyStudios/PancyJailGo/internal/lockout"
	"github.com/PancyStudios/PancyJailGo/pkg/database"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/errors"
	"github.com/PancyStudios/PancyJailGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// scheduleTarget resolves the member a schedule command acts on: the
// explicit `usuario` option when present, the invoker otherwise.
func scheduleTarget(invoker, optioned *discordgo.User) *discordgo.User {
	if optioned != nil {
		return optioned
	}
	return invoker
}

// canManageSchedule reports whether the invoker may create or clear the
// target's schedule. Members always manage their own; someone else's
// requires moderator rights.
func canManageSchedule(invokerID, targetID string, isModerator bool) bool {
	return invokerID == targetID || isModerator
}

// isScheduleModerator reports whether the invoking member carries Manage
// Roles (or Administrator, which implies it).
func isScheduleModerator(ctx *discord.CommandContext) bool {
	member := ctx.Member()
	if member == nil {
		return false
	}
	return member.Permissions&(discordgo.PermissionManageRoles|discordgo.PermissionAdministrator) != 0
}

var repeatChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Todos los días", Value: string(models.RepeatDaily)},
	{Name: "Entre semana (lun-vie)", Value: string(models.RepeatWeekdays)},
	{Name: "Fines de semana (sáb-dom)", Value: string(models.RepeatWeekends)},
}

// createScheduleSetCommand creates the /lockdown schedule-set subcommand
func createScheduleSetCommand() *discord.Command {
	return discord.NewCommand(
		"schedule-set",
		"Crea o reemplaza un horario de bloqueo (el tuyo por defecto)",
		"lockdown",
		scheduleSetHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "inicio",
			Description: "Hora de inicio del bloqueo (HH:MM, hora local del usuario)",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "fin",
			Description: "Hora de fin del bloqueo (HH:MM, hora local del usuario)",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "repetir",
			Description: "Días en los que aplica",
			Required:    true,
			Choices:     repeatChoices,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Otro usuario (solo moderadores)",
			Required:    false,
		},
	).WithBotPermissions(discordgo.PermissionManageRoles)
}

// scheduleSetHandler handles the /lockdown schedule-set command
func scheduleSetHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		user := scheduleTarget(ctx.User(), ctx.GetUserOption("usuario"))
		if user == nil {
			ctx.ReplyEphemeral("❌ No se pudo resolver el usuario.")
			return
		}
		if !canManageSchedule(ctx.User().ID, user.ID, isScheduleModerator(ctx)) {
			ctx.ReplyEphemeral("❌ Solo puedes gestionar tu propio horario.")
			return
		}

		start := ctx.GetStringOption("inicio")
		end := ctx.GetStringOption("fin")
		repeat := models.RepeatMode(ctx.GetStringOption("repetir"))

		if _, err := lockout.ParseClock(start); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Hora de inicio inválida: `%s` (usa HH:MM).", start))
			return
		}
		if _, err := lockout.ParseClock(end); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Hora de fin inválida: `%s` (usa HH:MM).", end))
			return
		}
		if !repeat.Valid() {
			ctx.ReplyEphemeral("❌ Modo de repetición inválido.")
			return
		}

		svc := database.NewLockoutService()

		// Replacing a schedule keeps the authority flag: if the bot removed
		// the role under the old schedule it still owes the restore under
		// the new one
		lockedByBot := false
		if existing, err := svc.Schedule(ctx.Interaction.GuildID, user.ID); err == nil && existing != nil {
			lockedByBot = existing.LockedByBot
		}

		sched := &models.UserSchedule{
			GuildID:     ctx.Interaction.GuildID,
			UserID:      user.ID,
			Start:       start,
			End:         end,
			Repeat:      repeat,
			LockedByBot: lockedByBot,
		}

		if err := svc.SaveSchedule(sched); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error guardando el horario: %v", err))
			return
		}

		ctx.Reply(fmt.Sprintf(
			"📅 Horario de **%s** guardado: bloqueo de `%s` a `%s` (%s).",
			user.Username, start, end, repeatLabel(repeat),
		))
	}()
	return nil
}

// createScheduleViewCommand creates the /lockdown schedule-view subcommand
func createScheduleViewCommand() *discord.Command {
	return discord.NewCommand(
		"schedule-view",
		"Muestra el horario de bloqueo de un usuario",
		"lockdown",
		scheduleViewHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar (por defecto, tú)",
			Required:    false,
		},
	)
}

// scheduleViewHandler handles the /lockdown schedule-view command
func scheduleViewHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		user := scheduleTarget(ctx.User(), ctx.GetUserOption("usuario"))
		if user == nil {
			ctx.ReplyEphemeral("❌ No se pudo resolver el usuario.")
			return
		}

		svc := database.NewLockoutService()

		sched, err := svc.Schedule(ctx.Interaction.GuildID, user.ID)
		if err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error consultando el horario: %v", err))
			return
		}
		if sched == nil {
			ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ **%s** no tiene horario de bloqueo.", user.Username))
			return
		}

		state := "libre"
		if sched.LockedByBot {
			state = "bloqueado por el bot"
		}

		ctx.Reply(fmt.Sprintf(
			"📅 **Horario de %s**\n"+
				"• Bloqueo: `%s` a `%s`\n"+
				"• Días: %s\n"+
				"• Estado: %s",
			user.Username, sched.Start, sched.End, repeatLabel(sched.Repeat), state,
		))
	}()
	return nil
}

// createScheduleClearCommand creates the /lockdown schedule-clear subcommand
func createScheduleClearCommand() *discord.Command {
	return discord.NewCommand(
		"schedule-clear",
		"Elimina un horario de bloqueo (el tuyo por defecto)",
		"lockdown",
		scheduleClearHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Otro usuario (solo moderadores)",
			Required:    false,
		},
	)
}

// scheduleClearHandler handles the /lockdown schedule-clear command
func scheduleClearHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !inCommandChannel(ctx) {
			return
		}

		user := scheduleTarget(ctx.User(), ctx.GetUserOption("usuario"))
		if user == nil {
			ctx.ReplyEphemeral("❌ No se pudo resolver el usuario.")
			return
		}
		if !canManageSchedule(ctx.User().ID, user.ID, isScheduleModerator(ctx)) {
			ctx.ReplyEphemeral("❌ Solo puedes gestionar tu propio horario.")
			return
		}

		svc := database.NewLockoutService()

		sched, err := svc.Schedule(ctx.Interaction.GuildID, user.ID)
		if err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error consultando el horario: %v", err))
			return
		}
		if sched == nil {
			ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ **%s** no tiene horario de bloqueo.", user.Username))
			return
		}

		// If the bot currently holds the role, give it back before dropping
		// the schedule; otherwise the member would stay locked forever
		if sched.LockedByBot {
			if cfg, err := svc.Config(ctx.Interaction.GuildID); err == nil && cfg != nil && cfg.TargetRoleID != "" {
				if err := ctx.Session.GuildMemberRoleAdd(ctx.Interaction.GuildID, user.ID, cfg.TargetRoleID); err != nil {
					ctx.ReplyEphemeral(fmt.Sprintf("❌ No se pudo restaurar el rol antes de borrar el horario: %v", err))
					return
				}
			}
		}

		if err := svc.DeleteSchedule(ctx.Interaction.GuildID, user.ID); err != nil {
			ctx.ReplyEphemeral(fmt.Sprintf("❌ Error eliminando el horario: %v", err))
			return
		}

		ctx.Reply(fmt.Sprintf("🗑️ Horario de **%s** eliminado.", user.Username))
	}()
	return nil
}

// repeatLabel returns the human label for a repeat mode.
func repeatLabel(r models.RepeatMode) string {
	switch r {
	case models.RepeatWeekdays:
		return "entre semana"
	case models.RepeatWeekends:
		return "fines de semana"
	default:
		return "todos los días"
	}
}
