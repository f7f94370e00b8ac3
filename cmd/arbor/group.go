package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir [group]",
	Short: "Create a group (and its ancestors)",
	Long:  `Mkdir creates the full nested group chain. Re-creating an existing group is not an error.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(false)

		if err := svc.CreateGroup(context.Background(), args[0]); err != nil {
			fmt.Printf("Error creating group: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Group created: %s\n", args[0])
	},
}

var rmdirCmd = &cobra.Command{
	Use:   "rmdir [group]",
	Short: "Delete a group and all its contents",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(true)

		if err := svc.DeleteGroup(context.Background(), args[0]); err != nil {
			fmt.Printf("Error deleting group: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Group deleted: %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(rmdirCmd)
}
