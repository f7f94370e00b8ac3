package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [path]",
	Short: "Delete a note",
	Long: `Rm permanently removes a note file by its store-relative path.
The parent group is kept even if it becomes empty.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(true)

		if err := svc.DeleteNote(context.Background(), args[0]); err != nil {
			fmt.Printf("Error deleting note: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Note deleted: %s\n", args[0])
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename [path] [new-name]",
	Short: "Rename a note within its group",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(true)

		newPath, err := svc.RenameNote(context.Background(), args[0], args[1])
		if err != nil {
			fmt.Printf("Error renaming note: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Note renamed: %s\n", newPath)
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(renameCmd)
}
