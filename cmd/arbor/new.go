package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor"
)

var (
	newGroup   string
	newContent string
	newStdin   bool
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new note",
	Long: `New writes a note file into the given group, creating the group
chain as needed. A header block (title, id, date) is stamped onto the
content when missing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		svc := openService(false)

		content := newContent
		if newStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Printf("Error reading stdin: %v\n", err)
				os.Exit(1)
			}
			content = string(data)
		}

		note, err := svc.CreateNote(context.Background(), name, newGroup, content)
		if err != nil {
			fmt.Printf("Error creating note: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Note created: %s\n", note.Path)
	},
}

func init() {
	newCmd.Flags().StringVarP(&newGroup, "group", "g", arbor.DefaultGroup, "Group path for the note")
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Note body")
	newCmd.Flags().BoolVar(&newStdin, "stdin", false, "Read the note body from stdin")
	rootCmd.AddCommand(newCmd)
}
