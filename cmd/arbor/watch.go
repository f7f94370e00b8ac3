package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the store for external changes",
	Long: `Watch observes the store root recursively and prints each debounced
change batch. Rapid writes to one file coalesce into a single
notification. Interrupt to stop.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(true)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stop, err := svc.Subscribe(ctx, watchPattern, func(batch arbor.Batch) {
			for _, event := range batch {
				fmt.Println(event.String())
			}
		})
		if err != nil {
			fmt.Printf("Error starting watch: %v\n", err)
			os.Exit(1)
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		if err := stop(); err != nil {
			fmt.Printf("Error stopping watch: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "**/*", "Glob pattern for file events")
	rootCmd.AddCommand(watchCmd)
}
