package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/marketsim/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Long: `Write a runnable starter configuration to the given path
(default simrun.yaml). The extension selects the format: .json writes
JSON, anything else writes YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "simrun.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.Default().SaveToFile(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
