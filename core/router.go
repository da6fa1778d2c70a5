package core

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/require-lens/model"
)

// Result 是单个文件一次转换的输出。
// Changed 为 false 时 Code 与输入一致, 调用方应跳过下游处理。
type Result struct {
	Code    string
	Changed bool
	Record  *model.TransformRecord
}

// Transformer 按源码顺序遍历调用点, 把每个调用点路由到唯一的重写引擎:
//  1. 无实参                      -> 跳过
//  2. 内建/平台模块 id            -> 跳过
//  3. 顶层绑定 + 字面量 id 可确定 -> 静态提升
//  4. 非顶层   + id 静态可知      -> 内联提升
//  5. 非顶层   + id 运行期求值    -> 动态提升
//  6. 顶层绑定 + 无法确定字面量 id -> 致命 Diagnostic
type Transformer struct {
	Analyzer Analyzer
	Resolver SpecifierResolver
	Deriver  GlobDeriver
	Expander GlobExpander
	Config   *model.Config
}

// NewTransformer 从注册表组装指定语言的转换器, 使用默认的 doublestar 展开器。
func NewTransformer(lang Language, cfg *model.Config) (*Transformer, error) {
	analyzer, err := GetAnalyzer(lang)
	if err != nil {
		return nil, err
	}
	resolver, err := GetSpecifierResolver(lang, cfg)
	if err != nil {
		return nil, err
	}
	deriver, err := GetGlobDeriver(lang)
	if err != nil {
		return nil, err
	}

	return &Transformer{
		Analyzer: analyzer,
		Resolver: resolver,
		Deriver:  deriver,
		Expander: DoubleStarExpander{},
		Config:   cfg,
	}, nil
}

// TransformFile 对单个文件执行一次完整转换。
// 调用点严格按源码顺序串行处理: 后续语句生成的标识符依赖单调递增计数器,
// 动态引擎的去重也必须观察到同文件更早调用点创建的绑定。
// 返回的 error 为 *Diagnostic 时仅表示当前文件被放弃。
func (t *Transformer) TransformFile(ctx context.Context, rootNode *sitter.Node, source []byte, filePath string) (*Result, error) {
	sites, err := t.Analyzer.Analyze(rootNode, source, filePath)
	if err != nil {
		return nil, err
	}

	tc := NewTransformContext(filePath, source, t.Config)

	for _, site := range sites {
		// 1. 无实参调用: 不处理
		if site.Arg == nil {
			tc.AddRewrite(&model.Rewrite{
				Kind:     model.Skip,
				Location: nodeLocation(filePath, site.Call),
				Details:  "require without argument",
			})
			continue
		}

		switch d := site.Dynamism.(type) {
		case *StaticID:
			// 2. 内建模块: 原样保留
			if t.Resolver.IsBuiltin(d.ID) {
				tc.AddRewrite(&model.Rewrite{
					Kind:      model.Skip,
					Specifier: d.ID,
					Location:  nodeLocation(filePath, site.Call),
					Details:   "builtin module",
				})
				continue
			}
			if site.TopScope != nil {
				// 3. 顶层绑定, id 静态可知
				if err := t.runStaticPromotion(tc, site, d); err != nil {
					return nil, err
				}
			} else {
				// 4. 嵌套调用, id 静态可知
				t.runInlinePromotion(tc, site, d)
			}

		case *TemplateHead, *FullyDynamic:
			if site.TopScope != nil {
				// 6. 顶层 require 无法确定字面量 id: 静默跳过会把一条
				// 模块级 require 留在 ESM 输出里, 必须报错
				return nil, NewDiagnostic(filePath,
					"top-level require with non-literal module id cannot be promoted",
					site.TopScope.Statement, source)
			}
			// 5. 嵌套调用, id 运行期求值
			if err := t.runDynamicPromotion(ctx, tc, site); err != nil {
				return nil, err
			}
		}
	}

	code, changed, err := tc.Buffer.Render(source)
	if err != nil {
		return nil, err
	}
	tc.Record.Changed = changed

	return &Result{Code: code, Changed: changed, Record: tc.Record}, nil
}

func nodeLocation(filePath string, n *sitter.Node) *model.Location {
	start := n.StartPosition()
	end := n.EndPosition()
	return &model.Location{
		FilePath:    filePath,
		StartLine:   int(start.Row) + 1,
		EndLine:     int(end.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndColumn:   int(end.Column) + 1,
	}
}
