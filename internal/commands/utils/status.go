package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyJailGo/pkg/database"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/PancyStudios/PancyJailGo/pkg/errors"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()

		jailed := 0
		counting := 0
		if records, err := database.NewLockoutService().AllJails(); err == nil {
			jailed = len(records)
			for _, rec := range records {
				if rec.Counting() {
					counting++
				}
			}
		}

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado del Bot**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• Servidores: %d\n"+
				"• Encarcelados: %d (%d contando)",
			dbStatus,
			ctx.Client.GuildCount(),
			jailed,
			counting,
		))
	}()
	return nil
}
