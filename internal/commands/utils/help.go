package utils

import (
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de PancyJail Go**\n\n" +
				"**Comandos disponibles:**\n" +
				"• `/utils ping` - Comprueba la latencia\n" +
				"• `/utils status` - Estado del bot\n" +
				"• `/lockdown set-lockout <canales> <rol>` - Configura el sistema\n" +
				"• `/lockdown schedule-set <usuario> <inicio> <fin> <repetir>` - Horario de bloqueo\n" +
				"• `/lockdown schedule-view [usuario]` - Consulta un horario\n" +
				"• `/lockdown schedule-clear <usuario>` - Elimina un horario\n" +
				"• `/lockdown timeout <usuario> <duración>` - Envía a la cárcel\n" +
				"• `/lockdown untimeout <usuario>` - Libera de la cárcel\n" +
				"• `/lockdown timezone add <rol> <desfase>` - Asocia rol a zona horaria\n" +
				"• `/lockdown timezone remove <rol>` - Quita una zona horaria\n" +
				"• `/lockdown timezone list` - Lista las zonas horarias",
		)
	}()
	return nil
}
