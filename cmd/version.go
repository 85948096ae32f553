package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of the backend, bumped on release.
const Version = "1.1.2"

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("blenderhub", Version)
		},
	}
}
