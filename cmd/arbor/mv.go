package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var mvGroup bool

var mvCmd = &cobra.Command{
	Use:   "mv [source] [target-group]",
	Short: "Move a note (or a whole group) into another group",
	Long: `Mv relocates a note file into the target group, or with --group a
whole subtree under it. Use "default" as the target for the store root.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(true)

		if mvGroup {
			newPath, err := svc.MoveGroup(context.Background(), args[0], args[1])
			if err != nil {
				fmt.Printf("Error moving group: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Group moved: %s\n", newPath)
			return
		}

		newPath, err := svc.MoveNote(context.Background(), args[0], args[1])
		if err != nil {
			fmt.Printf("Error moving note: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Note moved: %s\n", newPath)
	},
}

func init() {
	mvCmd.Flags().BoolVar(&mvGroup, "group", false, "Treat the source as a group path")
	rootCmd.AddCommand(mvCmd)
}
