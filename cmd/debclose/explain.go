package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BigBIueWhale/debclose/internal/apt"
	"github.com/BigBIueWhale/debclose/internal/config"
	"github.com/BigBIueWhale/debclose/internal/dlog"
)

func newExplainCmd() *cobra.Command {
	var indexDir string

	cmd := &cobra.Command{
		Use:   "explain <package>",
		Short: "Show which record and which alternative in each dependency group would be chosen, without fetching anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if indexDir == "" {
				indexDir = cfg.IndexDir
			}
			if indexDir == "" {
				indexDir = "./index"
			}

			log := dlog.New(os.Stderr)
			log.Verbose = verbose

			idx, err := apt.BuildIndexes(indexDir)
			if err != nil {
				return err
			}

			rec, explanations, err := apt.Explain(idx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", rec.Key())
			for _, e := range explanations {
				fmt.Printf("  %s\n", e.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&indexDir, "index-dir", "", "directory of pre-downloaded Packages index files")

	return cmd
}
