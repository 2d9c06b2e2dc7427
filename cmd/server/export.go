package main

import (
	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/config"
	"github.com/seat-finder-api/internal/repository"
	"github.com/seat-finder-api/internal/service"
	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the default roster",
	Long:  "Prints the default roster in tsv, csv, json or ndjson. The tsv output can be pasted straight into an import.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", string(service.FormatTSV), "output format: tsv, csv, json, ndjson")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := service.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	services := service.NewServices(repository.New(1), &config.Config{}, zerolog.Nop())
	_, err = services.Export.Export(cmd.Context(), cmd.OutOrStdout(), format)
	return err
}
