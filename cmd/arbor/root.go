package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/arbor"
)

var (
	verbose   bool
	storeFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "A hierarchical, file-backed note store",
	Long: `Arbor organizes plain-text notes into a tree of named groups
backed directly by the filesystem. Groups are directories, the default
group is the store root itself, and the authoritative view is always
re-derived from disk.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Store root directory (default: discovered upward from cwd)")
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
}

// initConfig reads an optional arbor.yaml plus ARBOR_* env variables.
func initConfig() {
	viper.SetConfigName("arbor")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("arbor")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// storeRoot resolves the store root: flag/env/config first, then upward
// discovery, then the working directory itself.
func storeRoot() string {
	if root := viper.GetString("store"); root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		fmt.Printf("Error getting working directory: %v\n", err)
		os.Exit(1)
	}
	if root, err := arbor.FindStoreRoot(wd); err == nil {
		return root
	}
	return wd
}

// openService builds a service for the resolved store root.
func openService(mustExist bool) *arbor.Service {
	svc, err := arbor.New(storeRoot(),
		arbor.WithMustExist(mustExist),
		arbor.WithLogger(slog.Default()),
	)
	if err != nil {
		fmt.Printf("Error initializing arbor: %v\n", err)
		os.Exit(1)
	}
	return svc
}
