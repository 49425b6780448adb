package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/theckman/go-flock"

	"github.com/BigBIueWhale/debclose/internal/apt"
	"github.com/BigBIueWhale/debclose/internal/closure"
	"github.com/BigBIueWhale/debclose/internal/config"
	"github.com/BigBIueWhale/debclose/internal/dlog"
	"github.com/BigBIueWhale/debclose/internal/fetch"
	"github.com/BigBIueWhale/debclose/internal/report"
)

const defaultBaseURL = "https://archive.ubuntu.com/ubuntu"

func newResolveCmd() *cobra.Command {
	var baseURLsCSV string
	var packages []string
	var indexDir string
	var outDir string
	var dryRun bool
	var reportPath string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Compute the dependency closure of --packages and download every .deb into --out",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			baseURLs := splitCSV(baseURLsCSV)
			if len(baseURLs) == 0 {
				baseURLs = cfg.BaseURL
			}
			if len(baseURLs) == 0 {
				baseURLs = []string{defaultBaseURL}
			}

			if len(packages) == 0 {
				packages = cfg.Packages
			}
			if len(packages) == 0 {
				return errNoPackages
			}

			if indexDir == "" {
				indexDir = cfg.IndexDir
			}
			if indexDir == "" {
				indexDir = "./index"
			}
			if outDir == "" {
				outDir = cfg.OutDir
			}
			if outDir == "" {
				outDir = "./debs"
			}

			log := dlog.New(os.Stderr)
			log.Verbose = verbose

			idx, err := apt.BuildIndexes(indexDir)
			if err != nil {
				return err
			}
			log.LogPkgfln("loaded index for target arch %s", idx.TargetArch)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			// Guard the download directory for the run's duration: two
			// concurrent invocations against the same --out could
			// otherwise race on the same .part temp file.
			fl := flock.NewFlock(lockPath(outDir))
			locked, err := fl.TryLock()
			if err != nil {
				return err
			}
			if !locked {
				return errDirLocked
			}
			defer fl.Unlock()

			fch := fetch.New(outDir, baseURLs, log)
			w := closure.New(idx, fch, log)
			w.DryRun = dryRun

			if err := w.Walk(context.Background(), packages); err != nil {
				return err
			}

			log.LogPkgfln("resolved closure of %d package(s)", len(w.Resolved))
			if dryRun {
				for _, r := range w.Resolved {
					log.Logf("%s\n", r.Key())
				}
			}

			if reportPath != "" {
				if err := report.Write(reportPath, w.Resolved); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&baseURLsCSV, "base-url", "", "comma-separated mirror base URLs, tried in order (default "+defaultBaseURL+")")
	cmd.Flags().StringSliceVar(&packages, "packages", nil, "one or more top-level package names (DepAtom syntax permitted)")
	cmd.Flags().StringVar(&indexDir, "index-dir", "", "directory of pre-downloaded Packages index files")
	cmd.Flags().StringVar(&outDir, "out", "", "directory to download .deb artifacts into")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve the closure without downloading anything")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a TOML report of the resolved closure to this path")

	return cmd
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lockPath(dir string) string {
	return dir + "/.debclose.lock"
}
