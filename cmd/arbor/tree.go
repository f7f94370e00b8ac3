package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor"
)

var treeJSON bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Scan the store and print the group tree",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(true)

		snap, err := svc.Scan(context.Background())
		if err != nil {
			fmt.Printf("Error scanning store: %v\n", err)
			os.Exit(1)
		}

		if treeJSON {
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				fmt.Printf("Error encoding snapshot: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		printTree(snap)
	},
}

// printTree renders the snapshot grouped by group path, default first.
func printTree(snap arbor.Snapshot) {
	byGroup := make(map[string][]arbor.Note)
	for _, note := range snap.Notes {
		byGroup[note.Group] = append(byGroup[note.Group], note)
	}
	for _, group := range snap.EmptyGroups {
		if _, ok := byGroup[group]; !ok {
			byGroup[group] = nil
		}
	}

	groups := make([]string, 0, len(byGroup))
	for group := range byGroup {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		// Default group sorts first, everything else lexically.
		if groups[i] == arbor.DefaultGroup {
			return true
		}
		if groups[j] == arbor.DefaultGroup {
			return false
		}
		return groups[i] < groups[j]
	})

	for _, group := range groups {
		notes := byGroup[group]
		if group == arbor.DefaultGroup {
			fmt.Println("(default)")
		} else {
			depth := strings.Count(group, "/")
			fmt.Printf("%s%s/\n", strings.Repeat("  ", depth), groupLeafLabel(group))
		}
		for _, note := range notes {
			depth := strings.Count(group, "/") + 1
			if group == arbor.DefaultGroup {
				depth = 1
			}
			fmt.Printf("%s- %s\n", strings.Repeat("  ", depth), note.Name)
		}
	}
}

func groupLeafLabel(group string) string {
	if i := strings.LastIndex(group, "/"); i >= 0 {
		return group[i+1:]
	}
	return group
}

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output the raw snapshot as JSON")
	rootCmd.AddCommand(treeCmd)
}
