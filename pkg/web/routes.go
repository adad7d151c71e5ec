// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/PancyStudios/PancyJailGo/pkg/database"
	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/lockdown", lockdownSummaryHandler)
		api.GET("/lockdown/:guildId", lockdownGuildHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyJail Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// lockdownSummaryHandler returns a global view of active jail records.
func lockdownSummaryHandler(c *gin.Context) {
	svc := database.NewLockoutService()

	records, err := svc.AllJails()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Unavailable",
			"message": "No se pudieron consultar los registros de cárcel.",
		})
		return
	}

	perGuild := make(map[string]int)
	counting := 0
	for _, rec := range records {
		perGuild[rec.GuildID]++
		if rec.Counting() {
			counting++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"jailed":   len(records),
		"counting": counting,
		"paused":   len(records) - counting,
		"perGuild": perGuild,
	})
}

// lockdownGuildHandler returns a guild's jail records and schedule count.
func lockdownGuildHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	svc := database.NewLockoutService()

	records, err := svc.JailsByGuild(guildID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Unavailable",
			"message": "No se pudieron consultar los registros de cárcel.",
		})
		return
	}

	schedules, err := svc.SchedulesByGuild(guildID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Unavailable",
			"message": "No se pudieron consultar los horarios.",
		})
		return
	}

	inmates := make([]gin.H, 0, len(records))
	for _, rec := range records {
		inmates = append(inmates, gin.H{
			"userId":           rec.UserID,
			"totalSeconds":     rec.TotalSeconds,
			"remainingSeconds": rec.RemainingSeconds,
			"counting":         rec.Counting(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId":   guildID,
		"jailed":    len(records),
		"schedules": len(schedules),
		"inmates":   inmates,
	})
}
