package core

import (
	"fmt"

	"github.com/CodMac/require-lens/model"
)

// runInlinePromotion 处理嵌套在其他表达式/语句里的静态 require:
// 调用表达式本身替换为一个新分配的命名空间绑定引用,
// 对应的 import 提升到文件头部。
// 绑定不跨调用点去重 —— 即使两个内联调用点导入同一文件,
// 也各自获得独立的提升 import (与动态引擎的缓存策略相反)。
func (t *Transformer) runInlinePromotion(tc *TransformContext, site *CallSite, d *StaticID) {
	name := tc.NextImportName()

	tc.Buffer.Replace(site.Call.StartByte(), site.Call.EndByte(), name)
	tc.Buffer.Prepend(fmt.Sprintf("import * as %s from %s;", name, d.Raw))

	tc.AddRewrite(&model.Rewrite{
		Kind:      model.InlinePromotion,
		Specifier: d.ID,
		Location:  nodeLocation(tc.FilePath, site.Call),
		Details:   name,
	})
	tc.AddImport(&model.HoistedImport{
		LocalName: name,
		Source:    d.ID,
		Kind:      model.InlinePromotion,
	})
}
