package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"mobisync/internal/app/client"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	dimColor  = color.New(color.FgHiBlack)
)

// report общие поля отчета любой задачи
type report struct {
	Success bool              `json:"success"`
	RunID   string            `json:"run_id"`
	Synced  map[string]int    `json:"synced"`
	Skipped map[string]int    `json:"skipped"`
	Errors  map[string]string `json:"errors"`
	Error   string            `json:"error"`
}

func printReport(w io.Writer, resp *client.Response, raw bool) error {
	if raw {
		return printJSON(w, resp.Body)
	}

	var r report
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		// не отчет задачи, печатаем как есть
		_, err = fmt.Fprintf(w, "HTTP %d: %s\n", resp.StatusCode, bytes.TrimSpace(resp.Body))
		return err
	}

	if r.Success {
		okColor.Fprintf(w, "✓ Задача выполнена (HTTP %d)\n", resp.StatusCode)
	} else {
		failColor.Fprintf(w, "✗ Задача завершилась с ошибкой (HTTP %d)\n", resp.StatusCode)
	}
	if r.RunID != "" {
		dimColor.Fprintf(w, "  run_id: %s\n", r.RunID)
	}

	for _, k := range sortedKeys(r.Synced) {
		line := fmt.Sprintf("  %s: %d", k, r.Synced[k])
		if n := r.Skipped[k]; n > 0 {
			line += fmt.Sprintf(" (пропущено %d)", n)
		}
		fmt.Fprintln(w, line)
	}
	for _, k := range sortedKeys(r.Errors) {
		failColor.Fprintf(w, "  %s: %s\n", k, r.Errors[k])
	}
	if r.Error != "" && len(r.Errors) == 0 {
		failColor.Fprintf(w, "  %s\n", r.Error)
	}
	return nil
}

func printHealth(w io.Writer, resp *client.Response, raw bool) error {
	if raw {
		return printJSON(w, resp.Body)
	}

	var h struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	_ = json.Unmarshal(resp.Body, &h)

	c := okColor
	if resp.StatusCode != 200 {
		c = failColor
	}
	c.Fprintf(w, "status: %s\n", h.Status)
	fmt.Fprintf(w, "database: %s\n", h.Database)
	return nil
}

func printJSON(w io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(body))
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
