package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/planner"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import screenings from a JSON file",
		Long: `Import screenings from a JSON file into the current schedule.

The file holds either a list of screenings or an object with a "screenings"
list, as written by export and by the file storage backend. Every screening
gets a new id. Entries that fail validation are reported and skipped.

Example:
  zaalplan import ~/programme.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("import file does not exist: %s", path)
				}
				return fmt.Errorf("checking import file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("import path is a directory: %s", path)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			records, err := decodeRecords(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}

			count, err := importRecords(cmd.Context(), p, records, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d screenings from %s\n", count, len(records), path)
			return nil
		},
	}

	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export all screenings as JSON",
		Long: `Write every screening as JSON, to stdout or to the given file.

Example:
  zaalplan export > programme.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}

			data, err := encodeRecords(p.Screenings())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d screenings to %s\n", len(p.Screenings()), path)
			return nil
		},
	}

	return cmd
}

// decodeRecords accepts a bare list or a {"screenings": [...]} document.
func decodeRecords(data []byte) ([]screening.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []screening.Record
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var doc struct {
		Screenings []screening.Record `json:"screenings"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Screenings, nil
}

func encodeRecords(list []*screening.Screening) ([]byte, error) {
	records := make([]screening.Record, 0, len(list))
	for _, s := range list {
		records = append(records, s.ToRecord())
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding screenings: %w", err)
	}
	return append(data, '\n'), nil
}

// importRecords creates a screening per record. Invalid records are reported
// on w and skipped; a storage failure stops the import.
func importRecords(ctx context.Context, p *planner.Planner, records []screening.Record, w io.Writer) (int, error) {
	imported := 0
	for i, r := range records {
		d := screening.Draft{
			Title:    r.Title,
			Date:     r.Date,
			Time:     r.Time,
			Duration: r.Duration,
			Hall:     r.Hall,
			Genre:    r.Genre,
		}
		if _, err := p.Create(ctx, d); err != nil {
			if verr, ok := screening.AsValidation(err); ok {
				fmt.Fprintln(w, formatWarning(fmt.Sprintf("Skipping entry %d (%q): %v", i+1, r.Title, verr)))
				continue
			}
			return imported, fmt.Errorf("importing screening %q: %w", r.Title, err)
		}
		imported++
	}
	return imported, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
