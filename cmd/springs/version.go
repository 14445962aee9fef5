package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of springs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("springs version 1.0.0")
	},
}
