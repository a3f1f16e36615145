package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/writer/pkg/db"
)

func newDocumentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "document NAME",
		Short: "Print the id of a document, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *db.Store) error {
				id, err := store.GetOrCreateDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}

func newDictCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dict NAME",
		Short: "Print the id of a dictionary, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *db.Store) error {
				id, err := store.GetOrCreateDict(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}
