package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dbentity/entity"
	"github.com/goliatone/go-dbentity/internal/notes"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the notes table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.container.Pool().Get("")
			if err != nil {
				return err
			}
			if err := notes.CreateTable(cmd.Context(), db); err != nil {
				return fmt.Errorf("create notes table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "notes table ready")
			return nil
		},
	}
}

func newStoreCmd(a *app) *cobra.Command {
	var title, body, owner string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Insert a new note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			note := &notes.Note{Title: title, Body: body, Owner: owner, CreatedAt: time.Now().UTC()}
			e, err := a.entityFor(note)
			if err != nil {
				return err
			}
			stored, err := e.Store(cmd.Context())
			if err != nil {
				return err
			}
			return printModel(cmd, stored)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&body, "body", "", "note body")
	cmd.Flags().StringVar(&owner, "owner", "", "note owner (never printed)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <id>",
		Short: "Print a note by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, note, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			return printModel(cmd, note)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the title or body of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, note, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			var columns []string
			if cmd.Flags().Changed("title") {
				note.Title = title
				columns = append(columns, "title")
			}
			if cmd.Flags().Changed("body") {
				note.Body = body
				columns = append(columns, "body")
			}

			if err := e.Update(cmd.Context(), columns...); err != nil {
				return err
			}
			return printModel(cmd, note)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&body, "body", "", "new body")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, note, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			if err := e.Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted note %d\n", note.ID)
			return nil
		},
	}
}

func (a *app) entityFor(m entity.Model) (*entity.Entity, error) {
	return a.container.EntityFor(m, entity.WithCacheEnabled(a.settings.CacheEnabled))
}

// load finds the note with the given id and returns it bound to its entity.
func (a *app) load(cmd *cobra.Command, rawID string) (*entity.Entity, *notes.Note, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid note id %q", rawID)
	}

	e, err := a.entityFor(notes.New())
	if err != nil {
		return nil, nil, err
	}
	found, err := e.Find(cmd.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	if !found.IsInitialized() {
		return nil, nil, fmt.Errorf("note %d not found", id)
	}
	return e, found.(*notes.Note), nil
}

func printModel(cmd *cobra.Command, m entity.Model) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(m.ToPublicMap())
}
