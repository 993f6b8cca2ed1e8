package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/John-Robertt/fptop/internal/domain"
)

const (
	formatAuto = "auto"
	formatJSON = "json"
	formatText = "text"
)

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", formatAuto:
		return formatAuto, nil
	case formatJSON, formatText:
		return f, nil
	default:
		return "", fmt.Errorf("只能是 auto|json|text，实际是 %q", s)
	}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveFormat 把 auto 落到具体格式：终端给人看表格，管道/文件给程序看 JSON。
func resolveFormat(w io.Writer, format string) string {
	if format != formatAuto {
		return format
	}
	if isTTY(w) {
		return formatText
	}
	return formatJSON
}

func emitReport(w io.Writer, format string, rr domain.Top10Report) {
	if resolveFormat(w, format) == formatJSON {
		b, _ := json.MarshalIndent(rr, "", "  ")
		fmt.Fprintln(w, string(b))
		return
	}

	fmt.Fprintf(w, "%s top10 @ %s (%s)\n", rr.Platform, rr.Location, rr.Type)
	if rr.FellBack {
		color.New(color.FgYellow).Fprintf(w, "%s 榜单为空，已回退到 %s\n", rr.Location, rr.LocationUsed)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "路径", "TMDB", "状态"})
	for _, it := range rr.Items {
		id := string(it.ID)
		if id == "" {
			id = "-"
		}
		t.AppendRow(table.Row{it.Rank, it.Path, id, it.Status})
	}
	t.AppendFooter(table.Row{"", "合计", rr.Summary.Resolved, fmt.Sprintf("%d missed", rr.Summary.Missed)})
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "run_id: %s (%s)\n", rr.RunID, rr.FinishedAt.Sub(rr.StartedAt).Round(time.Millisecond))
}

// displayName 把 slug 转成人类可读名称，例如 "united-states" -> "United States"。
func displayName(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}
