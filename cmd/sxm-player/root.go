package main

import (
	"log"

	"github.com/AngellusMortis/sxm-player/cmd/sxm-player/run"
	"github.com/AngellusMortis/sxm-player/cmd/sxm-player/version"
	"github.com/spf13/cobra"
)

func main() {
	execute()
}

func execute() {
	var rootCmd = &cobra.Command{
		Use:   "sxm-player",
		Short: "record and splice satellite radio channels",
	}

	rootCmd.AddCommand(run.Command())
	rootCmd.AddCommand(version.Command())

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
