package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavelanni/tutor/internal/archive"
	"github.com/pavelanni/tutor/internal/export"
	appI18n "github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/prompt"
	"github.com/pavelanni/tutor/internal/report"
	"github.com/pavelanni/tutor/internal/shell"
	"github.com/pavelanni/tutor/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tutor [sheets.xml group.xml]",
		Short:        "Bookkeeping for tutorial groups: rosters, sheets, scores and LaTeX score tables",
		SilenceUsage: true,
	}

	sh := shellCmd()
	root.AddCommand(sh, reportCmd(), exportCmd(), archiveCmd())

	// Make "shell" the default when no subcommand is given.
	root.RunE = sh.RunE
	root.Args = sh.Args
	root.Flags().AddFlagSet(sh.Flags())

	return root
}

func shellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell [sheets.xml group.xml]",
		Short: "Edit a tutorial group interactively",
		Args:  cobra.RangeArgs(0, 2),
		RunE:  runShell,
	}
	f := cmd.Flags()
	f.StringP("lang", "l", "en", "UI language (en, de)")
	f.Bool("watch", true, "Warn when the backing files change on disk")
	addLogFlags(f, "warn")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [sheets.xml group.xml]",
		Short: "Write the LaTeX score table of a sheet",
		Args:  cobra.RangeArgs(0, 2),
		RunE:  runReport,
	}
	f := cmd.Flags()
	addReportFlags(f)
	f.StringP("output", "o", "", "Output file path (default <group>_sheet<no>.tex, - for stdout)")
	addLogFlags(f, "info")
	_ = cmd.MarkFlagRequired("sheet")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [sheets.xml group.xml]",
		Short: "Export the score table of a sheet as JSON, YAML or XLSX",
		Args:  cobra.RangeArgs(0, 2),
		RunE:  runExport,
	}
	f := cmd.Flags()
	addReportFlags(f)
	f.StringP("format", "f", "json", "Output format (json, yaml, xlsx)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(f, "info")
	_ = cmd.MarkFlagRequired("sheet")
	return cmd
}

func archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive [sheets.xml group.xml]",
		Short: "Snapshot both documents into a SQLite database",
		Args:  cobra.RangeArgs(0, 2),
		RunE:  runArchive,
	}
	f := cmd.Flags()
	f.String("db", "tutor.db", "SQLite database path")
	addLogFlags(f, "info")
	return cmd
}

func runShell(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	sheetsPath, groupPath, err := documentPaths(v, args)
	if err != nil {
		return err
	}

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}
	ctx := appI18n.Context(cmd.Context(), lang)

	st, err := store.Load(sheetsPath, groupPath)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	var opts []shell.Option
	if v.GetBool("watch") {
		w, err := shell.NewWatcher(sheetsPath, groupPath)
		if err != nil {
			slog.Warn("file watcher disabled", "error", err)
		} else {
			defer w.Close()
			opts = append(opts, shell.WithChanges(w))
		}
	}

	out := cmd.OutOrStdout()
	in := prompt.New(os.Stdin, out)
	slog.Info("starting shell", "sheets", sheetsPath, "group", groupPath, "lang", lang)
	return shell.New(st, in, out, opts...).Run(ctx)
}

func runReport(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	st, table, err := buildTable(v, args)
	if err != nil {
		return err
	}

	outPath := v.GetString("output")
	switch outPath {
	case "-":
		return report.Render(cmd.OutOrStdout(), table)
	case "":
		outPath = report.Path(st.GroupPath(), table.Sheet)
	}
	return report.WriteFile(outPath, table)
}

func runExport(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	format, err := export.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}
	_, table, err := buildTable(v, args)
	if err != nil {
		return err
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, table); err != nil {
		return err
	}
	slog.Info("export complete", "format", format, "sheet", table.Sheet, "students", len(table.Rows), "output", outPath)
	return nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	sheetsPath, groupPath, err := documentPaths(v, args)
	if err != nil {
		return err
	}
	st, err := store.Open(sheetsPath, groupPath)
	if err != nil {
		return fmt.Errorf("open documents: %w", err)
	}

	db, err := archive.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	snap, err := db.Snapshot(st.Sheets(), st.Group())
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot %d: %d sheets, %d students, %d scores\n",
		snap.ID, snap.Sheets, snap.Students, snap.Scores)
	return nil
}
