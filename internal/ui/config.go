package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/config"
	"github.com/javiermolinar/zaalplan/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  zaalplan config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	pr := prompter{r: reader, w: out}
	if !pr.yesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Schedule.Halls = pr.slice("Halls (comma-separated)", cfg.Schedule.Halls)
	cfg.Schedule.StartHour = pr.number("First visible hour (0-23)", cfg.Schedule.StartHour)
	cfg.Schedule.EndHour = pr.number("Last visible hour, exclusive (1-24)", cfg.Schedule.EndHour)
	cfg.Storage.Backend = pr.value("Storage backend (sqlite, file)", cfg.Storage.Backend)
	cfg.Storage.DBPath = pr.value("Database path", cfg.Storage.DBPath)
	cfg.Storage.FilePath = pr.value("JSON file path", cfg.Storage.FilePath)
	cfg.Server.Addr = pr.value("HTTP listen address", cfg.Server.Addr)
	cfg.Log.Level = pr.value("Log level", cfg.Log.Level)
	cfg.UI.Theme = pr.pickTheme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[schedule]")
	fmt.Fprintf(w, "  halls            = %s\n", strings.Join(cfg.Schedule.Halls, ", "))
	fmt.Fprintf(w, "  start_hour       = %d\n", cfg.Schedule.StartHour)
	fmt.Fprintf(w, "  end_hour         = %d\n", cfg.Schedule.EndHour)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  backend          = %s\n", cfg.Storage.Backend)
	fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  file_path        = %s\n", cfg.Storage.FilePath)
	fmt.Fprintf(w, "  fallback_to_file = %t\n", cfg.Storage.FallbackToFile)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr             = %s\n", cfg.Server.Addr)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level            = %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file             = %s\n", cfg.Log.File)
	}
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "\n%d films in the catalog (see zaalplan catalog)\n", len(cfg.Catalog))
}

// prompter reads answers line by line; an empty answer keeps the current
// value.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) read() string {
	input, _ := p.r.ReadString('\n')
	return strings.TrimSpace(input)
}

func (p prompter) yesNo(question string) bool {
	fmt.Fprintf(p.w, "%s [y/N]: ", question)
	input := strings.ToLower(p.read())
	return input == "y" || input == "yes"
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input := p.read()
	if input == "" {
		return current
	}
	return input
}

func (p prompter) number(label string, current int) int {
	for {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.w, "  Not a number: %q\n", value)
	}
}

func (p prompter) slice(label string, current []string) []string {
	fmt.Fprintf(p.w, "  %s [%s]: ", label, strings.Join(current, ", "))
	input := p.read()
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (p prompter) pickTheme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
