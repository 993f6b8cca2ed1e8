package provider

import (
	"context"

	"github.com/John-Robertt/fptop/internal/domain"
)

// Source 把“站点变化”限制在 provider 子包内部；CLI 只依赖统一接口与稳定的 Trace。
//
// 约束：
// - 不做缓存、不做重试、不做限速
// - 抓取失败返回 *FetchError，由调用方决定如何收尾
// - fallback 为 domain.NoFallback 时不回退，否则最多回退一跳
type Source interface {
	GetTop10Trace(ctx context.Context, t domain.ContentType, platform domain.Platform, location, fallback domain.Location) (Trace, error)
}
