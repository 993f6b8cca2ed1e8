package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const sampleHeader = `# fptop 配置文件
# 优先级：命令行参数 > 环境变量 FPTOP_*（例如 FPTOP_LOG_LEVEL）> 本文件 > 内置默认
`

// Sample 返回带注释的默认配置（TOML）。
func Sample() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(sampleHeader)
	buf.WriteString("\n")

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(Defaults()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSample 把默认配置写到 path；已存在且 force=false 时返回 os.ErrExist。
func WriteSample(fsys afero.Fs, path string, force bool) error {
	if !force {
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s：%w", path, os.ErrExist)
		}
	}
	b, err := Sample()
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, b, 0o644)
}
