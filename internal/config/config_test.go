package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/John-Robertt/fptop/internal/domain"
	"github.com/John-Robertt/fptop/internal/infra/httpx"
	"github.com/John-Robertt/fptop/internal/provider/flixpatrol"
)

const cwd = "/work"

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for p, s := range files {
		if err := afero.WriteFile(fsys, p, []byte(s), 0o644); err != nil {
			t.Fatalf("写入文件失败 %q：%v", p, err)
		}
	}
	return fsys
}

func TestLoadEffective_NoFileUsesDefaults(t *testing.T) {
	eff, err := LoadEffectiveFs(memFs(t, nil), cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.ConfigFile != "" {
		t.Fatalf("不应读取任何配置文件，实际=%q", eff.ConfigFile)
	}
	if eff.BaseURL != flixpatrol.DefaultBaseURL || eff.UserAgent != httpx.DefaultUserAgent {
		t.Fatalf("默认值不符合预期：%+v", eff)
	}
	if eff.Fallback != domain.LocationWorld {
		t.Fatalf("默认 fallback 应为 world，实际=%q", eff.Fallback)
	}
	if eff.LogLevel != "info" || eff.LogFormat != "text" {
		t.Fatalf("日志默认值不符合预期：%+v", eff)
	}
}

func TestLoadEffective_ExplicitConfigNotFound(t *testing.T) {
	_, err := LoadEffectiveFs(memFs(t, nil), cwd, CLIArgs{ConfigPath: "missing.toml"})
	if Code(err) != ErrCodeNotFound {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeNotFound, err, Code(err))
	}
}

func TestLoadEffective_FileValues(t *testing.T) {
	fsys := memFs(t, map[string]string{
		filepath.Join(cwd, FileName): `
base_url = "https://mirror.example/"
fallback = "none"

[log]
level = "debug"
format = "json"
`,
	})

	eff, err := LoadEffectiveFs(fsys, cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.ConfigFile != filepath.Join(cwd, FileName) {
		t.Fatalf("ConfigFile 不符合预期：%q", eff.ConfigFile)
	}
	if eff.BaseURL != "https://mirror.example" {
		t.Fatalf("base_url 应去掉末尾斜杠，实际=%q", eff.BaseURL)
	}
	if eff.Fallback != domain.NoFallback {
		t.Fatalf("fallback=none 应关闭回退，实际=%q", eff.Fallback)
	}
	if eff.LogLevel != "debug" || eff.LogFormat != "json" {
		t.Fatalf("log 配置不符合预期：%+v", eff)
	}
}

func TestLoadEffective_MergeOrder(t *testing.T) {
	fsys := memFs(t, map[string]string{
		filepath.Join(cwd, "custom.toml"): `fallback = "france"
user_agent = "from-file"`,
	})
	t.Setenv("FPTOP_USER_AGENT", "from-env")

	// 环境变量覆盖配置文件。
	eff, err := LoadEffectiveFs(fsys, cwd, CLIArgs{ConfigPath: "custom.toml"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.UserAgent != "from-env" {
		t.Fatalf("期望 user_agent=from-env，实际=%q", eff.UserAgent)
	}
	if eff.Fallback != "france" {
		t.Fatalf("期望 fallback=france，实际=%q", eff.Fallback)
	}

	// CLI 显式指定，则覆盖环境变量与配置文件；--fallback=none 能关闭文件里的回退。
	eff2, err := LoadEffectiveFs(fsys, cwd, CLIArgs{
		ConfigPath:   "custom.toml",
		UserAgent:    "from-cli",
		UserAgentSet: true,
		Fallback:     "none",
		FallbackSet:  true,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff2.UserAgent != "from-cli" {
		t.Fatalf("期望 user_agent=from-cli，实际=%q", eff2.UserAgent)
	}
	if eff2.Fallback != domain.NoFallback {
		t.Fatalf("期望关闭回退，实际=%q", eff2.Fallback)
	}
}

func TestLoadEffective_InvalidValues(t *testing.T) {
	cases := map[string]CLIArgs{
		"base_url 缺少 scheme": {BaseURL: "flixpatrol.com", BaseURLSet: true},
		"base_url 非 http":    {BaseURL: "ftp://flixpatrol.com", BaseURLSet: true},
		"proxy 无法解析":         {ProxyURL: "http://[::1", ProxySet: true},
		"未知 fallback":        {Fallback: "atlantis", FallbackSet: true},
		"大小写不同的 fallback":    {Fallback: "World", FallbackSet: true},
		"未知日志格式":             {LogFormat: "xml", LogFormatSet: true},
	}
	for name, cli := range cases {
		_, err := LoadEffectiveFs(memFs(t, nil), cwd, cli)
		if Code(err) != ErrCodeInvalid {
			t.Fatalf("%s：期望 %q，实际 err=%v (code=%q)", name, ErrCodeInvalid, err, Code(err))
		}
	}
}

func TestLoadEffective_BrokenTOML(t *testing.T) {
	fsys := memFs(t, map[string]string{filepath.Join(cwd, FileName): `base_url = `})

	_, err := LoadEffectiveFs(fsys, cwd, CLIArgs{})
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeInvalid, err, Code(err))
	}
}

func TestWriteSample_RoundTripAndNoOverwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := filepath.Join(cwd, FileName)

	if err := WriteSample(fsys, path, false); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if err := WriteSample(fsys, path, false); !errors.Is(err, os.ErrExist) {
		t.Fatalf("期望 os.ErrExist，实际：%v", err)
	}
	if err := WriteSample(fsys, path, true); err != nil {
		t.Fatalf("force=true 不期望错误：%v", err)
	}

	// 写出的样例必须能被加载，且等价于内置默认值。
	eff, err := LoadEffectiveFs(fsys, cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("加载样例失败：%v", err)
	}
	if eff.ConfigFile != path || eff.Fallback != domain.LocationWorld || eff.BaseURL != flixpatrol.DefaultBaseURL {
		t.Fatalf("样例内容不符合默认值：%+v", eff)
	}
}
