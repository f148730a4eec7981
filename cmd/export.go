package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/importer"
	"github.com/pable/go-team-stats/internal/logger"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the season as JSON aggregates or as a workbook",
	Long: `Export the stored season.

  --format json   every aggregate for the selected tournament (the same document
                  'analyze' sends), with null figures explained in "notes"
  --format xlsx   the raw snapshot as a workbook that 'import' reads back

The format defaults to the --out file extension, then to json.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file path (default: stdout)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(exportFormat)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(exportOut)), ".")
	}
	if format == "" {
		format = "json"
	}

	ds, v, err := loadView()
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		doc, err := buildSeasonContext(ds, v, time.Now())
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		data = []byte(doc + "\n")
	case "xlsx":
		if exportOut == "" {
			return fmt.Errorf("xlsx export needs --out")
		}
		var buf bytes.Buffer
		if err := importer.Write(&buf, ds, nil); err != nil {
			return fmt.Errorf("encode workbook: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unknown format %q (want json or xlsx)", format)
	}

	if exportOut == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	logger.Printf("wrote %s (%s)", exportOut, format)
	return nil
}
