// Package javascript 实现 JavaScript 的 require 调用点分析、
// 说明符解析与动态 glob 推导, 通过 init 注册到 core。
// 使用方只需空白导入本包。
package javascript

import (
	"github.com/CodMac/require-lens/core"
	"github.com/CodMac/require-lens/model"
)

func init() {
	core.RegisterAnalyzer(core.LangJavaScript, NewAnalyzer())
	core.RegisterGlobDeriver(core.LangJavaScript, NewGlobDeriver())
	core.RegisterSpecifierResolver(core.LangJavaScript, func(cfg *model.Config) core.SpecifierResolver {
		return NewResolver(cfg)
	})
}
