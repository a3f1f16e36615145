package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/japaniel/writer/pkg/db"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search PREFIX",
		Short: "List entries whose headword starts with PREFIX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *db.Store) error {
				entries, err := store.WordsStartingWith(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
}

func renderEntries(w io.Writer, entries []db.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(0 entries)")
		return
	}
	// The store returns rows in no particular order.
	slices.SortFunc(entries, func(x, y db.Entry) int { return x.ID.Compare(y.ID) })

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Dict", "Traditional", "Simplified", "Pinyin", "Definitions"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.ID.String(),
			e.Dict.String(),
			e.Traditional,
			e.Simplified,
			strings.Join(e.Pinyin, " "),
			strings.Join(e.Defs, "; "),
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d entries)\n", len(entries))
}
