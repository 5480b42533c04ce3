// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-pipeline/internal/runstore"
	"github.com/pdiddy/research-pipeline/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived pipeline runs",
	Long: `Runs lists completed pipeline runs from the archive database, newest
first, with the subject, depth, and report location of each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := runstore.NewStore(types.ArchiveConfig{Dir: viper.GetString("archive.dir")})
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(os.Stdout, "no archived runs")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tMODE\tSUBJECT\tDEPTH\tSOURCES\tREPORT")
		for _, r := range records {
			subject := r.Topic
			if r.Mode == string(types.ModeCompare) {
				subject = r.ItemA + " vs " + r.ItemB
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Mode,
				subject, r.Depth, r.SourceCount, r.ReportPath)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")

	rootCmd.AddCommand(runsCmd)
}
