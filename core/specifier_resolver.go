package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodMac/require-lens/model"
)

// ErrUnresolvedSpecifier 表示裸说明符没有命中任何别名或无法定位到文件系统。
// 动态引擎把它当作静默跳过, 不产生编辑。
var ErrUnresolvedSpecifier = errors.New("unresolved specifier")

// SpecifierResolver 负责裸/别名说明符到文件系统路径的解析, 以及内建模块判定。
// 实现必须容忍跨文件的并发查询 (可共享只读缓存)。
type SpecifierResolver interface {
	// Resolve 把裸说明符解析为 ResolvedAlias。解析失败返回包裹 ErrUnresolvedSpecifier 的错误。
	Resolve(ctx context.Context, specifier, importerPath string) (*model.ResolvedAlias, error)

	// IsBuiltin 判断模块 id 是否为平台内建模块 (此类 require 原样保留)
	IsBuiltin(id string) bool
}

// SpecifierResolverFactory 根据转换配置构造解析器 (别名表来自配置)
type SpecifierResolverFactory func(cfg *model.Config) SpecifierResolver

var specifierResolverMap = make(map[Language]SpecifierResolverFactory)

// RegisterSpecifierResolver 注册一个语言与其对应的 SpecifierResolver 工厂函数。
func RegisterSpecifierResolver(lang Language, factory SpecifierResolverFactory) {
	specifierResolverMap[lang] = factory
}

// GetSpecifierResolver 根据语言类型获取对应的 SpecifierResolver 实例。
func GetSpecifierResolver(lang Language, cfg *model.Config) (SpecifierResolver, error) {
	factory, ok := specifierResolverMap[lang]
	if !ok {
		return nil, fmt.Errorf("no SpecifierResolver for language: %s", lang)
	}

	return factory(cfg), nil
}
