package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/config"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
	"github.com/seat-finder-api/internal/service"
	"github.com/spf13/cobra"
)

var rosterFile string

var lookupCmd = &cobra.Command{
	Use:   "lookup QUERY",
	Short: "Find a guest's table",
	Long: `Looks up a guest by name. With --file the roster is first imported
from a text file (one guest per line: name, table, optional note, separated
by tabs or commas); "-" reads the roster from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&rosterFile, "file", "f", "", "roster text file to import first")
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	services := service.NewServices(repository.New(1), &config.Config{}, zerolog.Nop())

	if rosterFile != "" {
		text, err := readRosterFile(cmd, rosterFile)
		if err != nil {
			return err
		}

		result, err := services.Import.Import(ctx, &models.ImportRequest{Text: text})
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", rosterFile, err)
		}
		if !result.OK {
			return fmt.Errorf("failed to import %s: %s", rosterFile, result.ErrorKind)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "imported %d attendees\n", result.RecordCount)
	}

	result := services.Lookup.Search(ctx, strings.Join(args, " "))
	out := cmd.OutOrStdout()
	switch {
	case !result.Searched:
		return fmt.Errorf("query is empty")
	case !result.Found:
		fmt.Fprintf(out, "not found: %s\n", result.Query)
	default:
		a := result.Attendee
		fmt.Fprintf(out, "%s\ttable %s", a.Name, a.Table)
		if a.Note != "" {
			fmt.Fprintf(out, "\t%s", a.Note)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func readRosterFile(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read roster from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read roster file: %w", err)
	}
	return string(data), nil
}
