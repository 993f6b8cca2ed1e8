package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/fptop/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "配置文件相关操作",
	}
	cmd.AddCommand(newConfigInitCommand(afero.NewOsFs()))
	return cmd
}

func newConfigInitCommand(fsys afero.Fs) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "写出带注释的默认配置（默认 ./fptop.toml）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return runError(err)
			}
			if err := config.WriteSample(fsys, abs, force); err != nil {
				if errors.Is(err, os.ErrExist) {
					return runError(fmt.Errorf("配置文件已存在：%s（使用 --force 覆盖）", abs))
				}
				return runError(fmt.Errorf("写入配置失败：%w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已写入 %s\n", abs)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "覆盖已存在的文件")
	return cmd
}
