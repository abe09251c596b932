package serial

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "serial",
	Short:            "Serial link related commands",
	Long:             ``,
	TraverseChildren: true,
}
