package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/illarion/credvault/internal/records"
	"github.com/spf13/cobra"
)

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show every record for a username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			set, err := a.openRecords(cmd.Context(), s)
			if err != nil {
				return err
			}

			found := records.NewManager(set).Retrieve(args[0])
			if found.Len() == 0 {
				fmt.Fprintf(out(cmd), "No records for %s\n", args[0])
				return nil
			}
			return printRecords(out(cmd), found)
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every record in the vault",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			set, err := a.openRecords(cmd.Context(), s)
			if err != nil {
				return err
			}

			if set.Len() == 0 {
				fmt.Fprintf(out(cmd), "No records in %s\n", s.FileName())
				return nil
			}
			return printRecords(out(cmd), set)
		},
	}
}

func printRecords(w io.Writer, set *records.Set) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cols := set.Columns()
	fmt.Fprintf(tw, "%s\t%s\n", cols[0], cols[1])
	for _, rec := range set.Records() {
		fmt.Fprintf(tw, "%s\t%s\n", rec.Username, rec.Password)
	}
	return tw.Flush()
}
