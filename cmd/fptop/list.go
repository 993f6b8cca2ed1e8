package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/fptop/internal/domain"
)

type slugEntry struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func newLocationsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "列出支持的地区 slug",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return usageError("--format：%v", err)
			}
			entries := lo.Map(domain.Locations(), func(l domain.Location, _ int) slugEntry {
				return slugEntry{Slug: string(l), Name: displayName(string(l))}
			})
			emitSlugs(cmd.OutOrStdout(), f, "地区", entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatAuto, "输出格式：auto|json|text")
	return cmd
}

func newPlatformsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "列出支持的平台 slug",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return usageError("--format：%v", err)
			}
			entries := lo.Map(domain.Platforms(), func(p domain.Platform, _ int) slugEntry {
				return slugEntry{Slug: string(p), Name: displayName(string(p))}
			})
			emitSlugs(cmd.OutOrStdout(), f, "平台", entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatAuto, "输出格式：auto|json|text")
	return cmd
}

// emitSlugs 在终端输出带名称的表格；非终端（auto）时一行一个 slug，便于 shell 管道使用。
func emitSlugs(w io.Writer, format, title string, entries []slugEntry) {
	switch format {
	case formatJSON:
		b, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(b))
		return
	case formatAuto:
		if !isTTY(w) {
			for _, e := range entries {
				fmt.Fprintln(w, e.Slug)
			}
			return
		}
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"slug", title})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Slug, e.Name})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("共 %d 个", len(entries))})
	fmt.Fprintln(w, t.Render())
}
