package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/John-Robertt/fptop/internal/domain"
	"github.com/John-Robertt/fptop/internal/infra/httpx"
	"github.com/John-Robertt/fptop/internal/provider/flixpatrol"
)

const (
	// ErrCodeNotFound 表示 --config 显式指定的文件不存在。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	// FileName 是自动发现的配置文件名（位于 cwd）。
	FileName = "fptop.toml"
	// EnvPrefix 是环境变量前缀，例如 FPTOP_BASE_URL、FPTOP_LOG_LEVEL。
	EnvPrefix = "FPTOP"

	// DefaultFallback 是榜单为空时的默认回退地区。
	DefaultFallback = string(domain.LocationWorld)
	// FallbackNone 用于显式关闭回退（配置/CLI 中写 "none"）。
	FallbackNone = "none"
)

const (
	keyBaseURL   = "base_url"
	keyUserAgent = "user_agent"
	keyProxyURL  = "proxy_url"
	keyFallback  = "fallback"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
)

// CLIArgs 是 CLI 暴露的覆盖项，并保留“是否显式指定”的信息。
// 这能保证覆盖优先级可实现：例如 --fallback=none 必须能覆盖配置里的 fallback="world"。
type CLIArgs struct {
	ConfigPath string

	BaseURL    string
	BaseURLSet bool

	UserAgent    string
	UserAgentSet bool

	ProxyURL string
	ProxySet bool

	Fallback    string
	FallbackSet bool

	LogLevel    string
	LogLevelSet bool

	LogFormat    string
	LogFormatSet bool
}

// FileConfig 对应 fptop.toml 的解析结构。
type FileConfig struct {
	BaseURL   string    `toml:"base_url" mapstructure:"base_url" comment:"FlixPatrol 站点地址（可指向镜像）"`
	UserAgent string    `toml:"user_agent" mapstructure:"user_agent" comment:"请求使用的 User-Agent"`
	ProxyURL  string    `toml:"proxy_url" mapstructure:"proxy_url" comment:"HTTP 代理，例如 http://127.0.0.1:7890；留空表示直连"`
	Fallback  string    `toml:"fallback" mapstructure:"fallback" comment:"榜单为空时回退的地区；none 表示不回退"`
	Log       LogConfig `toml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level" comment:"trace/debug/info/warn/error"`
	Format string `toml:"format" mapstructure:"format" comment:"text 或 json"`
}

// Defaults 返回内置默认配置（也是 config init 写出的内容）。
func Defaults() FileConfig {
	return FileConfig{
		BaseURL:   flixpatrol.DefaultBaseURL,
		UserAgent: httpx.DefaultUserAgent,
		ProxyURL:  "",
		Fallback:  DefaultFallback,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// EffectiveConfig 是合并并做最小规范化后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// ConfigFile 为实际读取的配置文件；未读取任何文件时为空。
	ConfigFile string

	BaseURL   string
	UserAgent string
	ProxyURL  string
	// Fallback 为 domain.NoFallback 时表示不回退。
	Fallback domain.Location

	LogLevel  string
	LogFormat string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 在真实文件系统上加载配置，见 LoadEffectiveFs。
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	return LoadEffectiveFs(afero.NewOsFs(), cwd, cli)
}

// LoadEffectiveFs 发现并读取配置文件，叠加环境变量，再与 CLI 参数合并为最终配置。
//
// 发现规则（固定）：
// 1) CLI 提供 --config：必须存在
// 2) 否则尝试 <cwd>/fptop.toml（可选）
//
// 覆盖优先级（固定）：CLI > 环境变量 FPTOP_* > 配置文件 > 内置默认
func LoadEffectiveFs(fsys afero.Fs, cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 默认值必须逐项注册：AutomaticEnv 只对已知 key 生效。
	def := Defaults()
	v.SetDefault(keyBaseURL, def.BaseURL)
	v.SetDefault(keyUserAgent, def.UserAgent)
	v.SetDefault(keyProxyURL, def.ProxyURL)
	v.SetDefault(keyFallback, def.Fallback)
	v.SetDefault(keyLogLevel, def.Log.Level)
	v.SetDefault(keyLogFormat, def.Log.Format)

	cfgPath := filepath.Join(cwdAbs, FileName)
	explicit := strings.TrimSpace(cli.ConfigPath) != ""
	if explicit {
		cfgPath = absCleanFrom(cwdAbs, cli.ConfigPath)
	}
	v.SetConfigFile(cfgPath)

	readFile := ""
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist):
			if explicit {
				return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: fs.ErrNotExist}
			}
		default:
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
	} else {
		readFile = cfgPath
	}

	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	eff, err := merge(cli, fc)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	eff.ConfigFile = readFile
	return eff, nil
}

func merge(cli CLIArgs, fc FileConfig) (EffectiveConfig, error) {
	pick := func(set bool, cliVal, fileVal string) string {
		if set {
			return strings.TrimSpace(cliVal)
		}
		return strings.TrimSpace(fileVal)
	}

	baseURL := pick(cli.BaseURLSet, cli.BaseURL, fc.BaseURL)
	if baseURL == "" {
		baseURL = flixpatrol.DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return EffectiveConfig{}, fmt.Errorf("base_url 无效：%q", baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return EffectiveConfig{}, fmt.Errorf("base_url 必须是 http/https：%q", baseURL)
	}

	userAgent := pick(cli.UserAgentSet, cli.UserAgent, fc.UserAgent)
	if userAgent == "" {
		userAgent = httpx.DefaultUserAgent
	}

	proxyURL := pick(cli.ProxySet, cli.ProxyURL, fc.ProxyURL)
	if proxyURL != "" {
		pu, err := url.Parse(proxyURL)
		if err != nil {
			return EffectiveConfig{}, fmt.Errorf("proxy_url 无效：%w", err)
		}
		if pu.Scheme == "" || pu.Host == "" {
			return EffectiveConfig{}, fmt.Errorf("proxy_url 缺少 scheme 或 host：%q", proxyURL)
		}
	}

	fallback, err := parseFallback(pick(cli.FallbackSet, cli.Fallback, fc.Fallback))
	if err != nil {
		return EffectiveConfig{}, err
	}

	logFormat := strings.ToLower(pick(cli.LogFormatSet, cli.LogFormat, fc.Log.Format))
	switch logFormat {
	case "":
		logFormat = "text"
	case "text", "json":
	default:
		return EffectiveConfig{}, fmt.Errorf("log.format 只能是 text 或 json，实际是 %q", logFormat)
	}

	return EffectiveConfig{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		ProxyURL:  proxyURL,
		Fallback:  fallback,
		LogLevel:  pick(cli.LogLevelSet, cli.LogLevel, fc.Log.Level),
		LogFormat: logFormat,
	}, nil
}

// parseFallback 把配置写法转成地区；""/"none"/"false" 都表示不回退。
func parseFallback(s string) (domain.Location, error) {
	switch strings.ToLower(s) {
	case "", FallbackNone, "false":
		return domain.NoFallback, nil
	}
	if !domain.IsLocation(s) {
		return domain.NoFallback, fmt.Errorf("fallback 不是已知地区：%q", s)
	}
	return domain.Location(s), nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}
