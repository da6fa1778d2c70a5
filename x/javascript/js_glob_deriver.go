package javascript

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/require-lens/core"
	"github.com/CodMac/require-lens/model"
)

// GlobDeriver 把动态 require 的实参表达式转换为等价的文件系统 glob,
// 与动态 import() 的变量导入转换规则一致: 每个运行期片段变成一个 "*"。
type GlobDeriver struct{}

func NewGlobDeriver() *GlobDeriver {
	return &GlobDeriver{}
}

// DeriveGlob 推导 glob 并在头部形如裸说明符时回调别名解析。
// 无静态头部或别名解析失败时返回 (nil, nil), 调用方静默跳过。
func (g *GlobDeriver) DeriveGlob(ctx context.Context, arg *sitter.Node, source []byte, resolveAlias core.AliasResolve) (*core.DerivedGlob, error) {
	glob, ok := globFromExpr(arg, source)
	if !ok {
		return nil, nil
	}
	glob = collapseStars(glob)

	star := strings.IndexByte(glob, '*')
	if star <= 0 {
		// 没有通配符不是动态表达式; 头部为空则完全动态, 两者都无法推导
		return nil, nil
	}
	head := glob[:star]

	var alias *model.ResolvedAlias
	if isBareHead(head) {
		resolved, err := resolveAlias(ctx, headDir(head))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, nil
		}
		alias = resolved
	}

	return &core.DerivedGlob{Glob: glob, Alias: alias}, nil
}

// globFromExpr 递归地把表达式翻译为 glob 片段
func globFromExpr(expr *sitter.Node, source []byte) (string, bool) {
	switch expr.Kind() {
	case KindString:
		return stringContent(expr.Utf8Text(source)), true

	case KindTemplateString:
		var b strings.Builder
		for i := uint(0); i < expr.NamedChildCount(); i++ {
			child := expr.NamedChild(i)
			if child.Kind() == KindTemplateSub {
				b.WriteByte('*')
			} else {
				b.WriteString(child.Utf8Text(source))
			}
		}
		return b.String(), true

	case KindBinaryExpression:
		op := expr.ChildByFieldName("operator")
		if op == nil || op.Utf8Text(source) != "+" {
			return "", false
		}
		left, lok := globFromExpr(expr.ChildByFieldName("left"), source)
		right, rok := globFromExpr(expr.ChildByFieldName("right"), source)
		if !lok || !rok {
			return "", false
		}
		return left + right, true

	case KindParenExpression:
		if inner := firstNamedNonComment(expr); inner != nil {
			return globFromExpr(inner, source)
		}
		return "", false

	default:
		// 标识符、调用等运行期值: 作为子表达式折叠成通配符
		return "*", true
	}
}

// collapseStars 把相邻的多个通配符折叠为一个
func collapseStars(glob string) string {
	for strings.Contains(glob, "**") {
		glob = strings.ReplaceAll(glob, "**", "*")
	}
	return glob
}

// isBareHead 判断头部是否为裸/别名说明符 (不以 . 或 / 开头)
func isBareHead(head string) bool {
	return !strings.HasPrefix(head, "./") &&
		!strings.HasPrefix(head, "../") &&
		!strings.HasPrefix(head, "/") &&
		head != "." && head != ".."
}

// headDir 返回头部的目录部分: "@/views/" -> "@/views", "@" -> "@"
func headDir(head string) string {
	if i := strings.LastIndexByte(head, '/'); i > 0 {
		return head[:i]
	}
	return head
}
