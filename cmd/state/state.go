package state

import (
	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "state",
	Short:            "Persisted controller state related commands",
	Long:             `The tunings and the setpoint of the regulator are saved on every change and restored on start.`,
	TraverseChildren: true,
}

func openPersistence() (persistence.Persistence, error) {
	if _, err := global.LoadConfig(); err != nil {
		return nil, err
	}
	p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p, nil
}
