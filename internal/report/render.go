package report

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const templateFile = "templates/extable.tex.tmpl"

var (
	loadOnce sync.Once
	loadErr  error
	texTmpl  *template.Template
)

var funcs = template.FuncMap{
	"points":  formatPoints,
	"percent": formatPercent,
}

func loadTemplate() (*template.Template, error) {
	loadOnce.Do(func() {
		content, err := templateFS.ReadFile(templateFile)
		if err != nil {
			loadErr = fmt.Errorf("read template %s: %w", templateFile, err)
			return
		}
		texTmpl, loadErr = template.New("extable").Funcs(funcs).Parse(string(content))
		if loadErr != nil {
			loadErr = fmt.Errorf("parse template %s: %w", templateFile, loadErr)
		}
	})
	return texTmpl, loadErr
}

// formatPoints prints up to six significant digits without trailing zeros.
func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Render writes the LaTeX document for t to w.
func Render(w io.Writer, t *Table) error {
	tmpl, err := loadTemplate()
	if err != nil {
		return err
	}
	return tmpl.Execute(w, t)
}

// WriteFile renders t completely before creating the file at path.
func WriteFile(path string, t *Table) error {
	var buf bytes.Buffer
	if err := Render(&buf, t); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	slog.Info("report written", "path", path, "sheet", t.Sheet, "students", len(t.Rows))
	return nil
}
