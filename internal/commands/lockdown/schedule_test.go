package lockdown

import (
	"testing"

	"github.com/PancyStudios/PancyJailGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func TestScheduleTargetDefaultsToInvoker(t *testing.T) {
	invoker := &discordgo.User{ID: "100", Username: "ana"}
	other := &discordgo.User{ID: "200", Username: "beto"}

	if got := scheduleTarget(invoker, nil); got != invoker {
		t.Errorf("sin opción usuario: esperado el invocador, obtenido %v", got)
	}
	if got := scheduleTarget(invoker, other); got != other {
		t.Errorf("con opción usuario: esperado el usuario explícito, obtenido %v", got)
	}
}

func TestCanManageSchedule(t *testing.T) {
	tests := []struct {
		name        string
		invokerID   string
		targetID    string
		isModerator bool
		want        bool
	}{
		{"propio horario sin permisos", "100", "100", false, true},
		{"propio horario con permisos", "100", "100", true, true},
		{"horario ajeno sin permisos", "100", "200", false, false},
		{"horario ajeno con permisos", "100", "200", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canManageSchedule(tt.invokerID, tt.targetID, tt.isModerator)
			if got != tt.want {
				t.Errorf("canManageSchedule(%s, %s, %v) = %v, esperado %v",
					tt.invokerID, tt.targetID, tt.isModerator, got, tt.want)
			}
		})
	}
}

// The schedule commands are self-service: any member runs them on their own
// schedule, so the builders must not carry a user-permission gate and the
// usuario option must be optional.
func TestScheduleCommandsAreSelfService(t *testing.T) {
	commands := []*discord.Command{
		createScheduleSetCommand(),
		createScheduleViewCommand(),
		createScheduleClearCommand(),
	}

	for _, cmd := range commands {
		t.Run(cmd.Name, func(t *testing.T) {
			if cmd.UserPermissions != 0 {
				t.Errorf("%s: no debe exigir permisos de usuario, tiene %d", cmd.Name, cmd.UserPermissions)
			}

			var userOpt *discordgo.ApplicationCommandOption
			for _, opt := range cmd.Options {
				if opt.Name == "usuario" {
					userOpt = opt
				}
			}
			if userOpt == nil {
				t.Fatalf("%s: falta la opción usuario", cmd.Name)
			}
			if userOpt.Required {
				t.Errorf("%s: la opción usuario debe ser opcional", cmd.Name)
			}
		})
	}
}
