package javascript

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/CodMac/require-lens/core"
)

// parseJS 把 JavaScript 源码解析成 AST 根节点
func parseJS(t *testing.T, source []byte) *sitter.Node {
	t.Helper()
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(tree_sitter_javascript.Language())); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		t.Fatal("parse returned nil tree")
	}
	return tree.RootNode()
}

func analyzeOne(t *testing.T, source string) *core.CallSite {
	t.Helper()
	src := []byte(source)
	sites, err := NewAnalyzer().Analyze(parseJS(t, src), src, "test.js")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(sites) != 1 {
		t.Fatalf("Expected 1 call site, got %d", len(sites))
	}
	return sites[0]
}

func TestAnalyzer_CallSiteIdentification(t *testing.T) {
	const source = `
const a = require('x');
notRequire('y');
obj.require('z');
function f() {
  return require('./nested');
}
`
	src := []byte(source)
	sites, err := NewAnalyzer().Analyze(parseJS(t, src), src, "test.js")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// 1. 只识别裸标识符 require 的调用, 按源码顺序
	if len(sites) != 2 {
		t.Fatalf("Expected 2 call sites, got %d", len(sites))
	}
	if sites[0].Call.StartByte() > sites[1].Call.StartByte() {
		t.Errorf("Expected call sites in source order")
	}

	// 2. Callee 只覆盖 require 标识符本身
	for i, site := range sites {
		if got := site.Callee.Utf8Text(src); got != "require" {
			t.Errorf("Site %d: expected callee 'require', got %q", i, got)
		}
	}
}

func TestAnalyzer_NoArgument(t *testing.T) {
	site := analyzeOne(t, "require();")
	if site.Arg != nil {
		t.Errorf("Expected nil Arg for zero-argument call")
	}
	if site.Dynamism != nil {
		t.Errorf("Expected nil Dynamism for zero-argument call")
	}
}

func TestAnalyzer_ClassifyDynamism(t *testing.T) {
	t.Run("字符串字面量", func(t *testing.T) {
		site := analyzeOne(t, "require('lodash');")
		d, ok := site.Dynamism.(*core.StaticID)
		if !ok {
			t.Fatalf("Expected StaticID, got %T", site.Dynamism)
		}
		if d.ID != "lodash" || d.Raw != "'lodash'" {
			t.Errorf("Unexpected StaticID: %+v", d)
		}
	})

	t.Run("双引号字面量保留 token", func(t *testing.T) {
		site := analyzeOne(t, `require("lodash");`)
		d, ok := site.Dynamism.(*core.StaticID)
		if !ok {
			t.Fatalf("Expected StaticID, got %T", site.Dynamism)
		}
		if d.Raw != `"lodash"` {
			t.Errorf("Expected original quote style, got %q", d.Raw)
		}
	})

	t.Run("无插值模板", func(t *testing.T) {
		site := analyzeOne(t, "require(`lodash`);")
		d, ok := site.Dynamism.(*core.StaticID)
		if !ok {
			t.Fatalf("Expected StaticID, got %T", site.Dynamism)
		}
		if d.ID != "lodash" || d.Raw != "'lodash'" {
			t.Errorf("Unexpected StaticID: %+v", d)
		}
	})

	t.Run("带插值模板", func(t *testing.T) {
		site := analyzeOne(t, "require(`./views/${name}`);")
		d, ok := site.Dynamism.(*core.TemplateHead)
		if !ok {
			t.Fatalf("Expected TemplateHead, got %T", site.Dynamism)
		}
		if d.Head != "./views/" {
			t.Errorf("Expected head './views/', got %q", d.Head)
		}
	})

	t.Run("插值在中间", func(t *testing.T) {
		site := analyzeOne(t, "require(`./locales/${lang}.json`);")
		d, ok := site.Dynamism.(*core.TemplateHead)
		if !ok {
			t.Fatalf("Expected TemplateHead, got %T", site.Dynamism)
		}
		if d.Head != "./locales/" {
			t.Errorf("Expected head './locales/', got %q", d.Head)
		}
	})

	t.Run("字符串拼接", func(t *testing.T) {
		site := analyzeOne(t, "require('./views/' + name + '.vue');")
		d, ok := site.Dynamism.(*core.TemplateHead)
		if !ok {
			t.Fatalf("Expected TemplateHead, got %T", site.Dynamism)
		}
		if d.Head != "./views/" {
			t.Errorf("Expected head './views/', got %q", d.Head)
		}
	})

	t.Run("插值开头的模板", func(t *testing.T) {
		site := analyzeOne(t, "require(`${base}/mod`);")
		if _, ok := site.Dynamism.(*core.FullyDynamic); !ok {
			t.Fatalf("Expected FullyDynamic, got %T", site.Dynamism)
		}
	})

	t.Run("裸标识符", func(t *testing.T) {
		site := analyzeOne(t, "require(moduleName);")
		if _, ok := site.Dynamism.(*core.FullyDynamic); !ok {
			t.Fatalf("Expected FullyDynamic, got %T", site.Dynamism)
		}
	})

	t.Run("非拼接运算符", func(t *testing.T) {
		site := analyzeOne(t, "require(a - b);")
		if _, ok := site.Dynamism.(*core.FullyDynamic); !ok {
			t.Fatalf("Expected FullyDynamic, got %T", site.Dynamism)
		}
	})

	t.Run("括号内递归分类", func(t *testing.T) {
		site := analyzeOne(t, "require(('x'));")
		if _, ok := site.Dynamism.(*core.StaticID); !ok {
			t.Fatalf("Expected StaticID, got %T", site.Dynamism)
		}
	})
}

func TestAnalyzer_DetectTopScope(t *testing.T) {
	topLevel := []struct {
		name   string
		source string
		kind   core.TopScopeKind
	}{
		{"顶层 const 绑定", "const a = require('x');", core.TopScopeDeclaration},
		{"顶层 var 绑定", "var a = require('x');", core.TopScopeDeclaration},
		{"顶层解构绑定", "const { a } = require('x');", core.TopScopeDeclaration},
		{"顶层成员访问绑定", "const a = require('x').foo;", core.TopScopeDeclaration},
		{"顶层表达式语句", "require('x');", core.TopScopeExpression},
	}
	for _, tc := range topLevel {
		t.Run(tc.name, func(t *testing.T) {
			site := analyzeOne(t, tc.source)
			if site.TopScope == nil {
				t.Fatalf("Expected top-scope binding")
			}
			if site.TopScope.Kind != tc.kind {
				t.Errorf("Expected kind %v, got %v", tc.kind, site.TopScope.Kind)
			}
			if site.TopScope.Statement == nil {
				t.Errorf("Expected statement node")
			}
			if tc.kind == core.TopScopeDeclaration && site.TopScope.Declarator == nil {
				t.Errorf("Expected declarator node for declaration binding")
			}
		})
	}

	nested := []struct {
		name   string
		source string
	}{
		{"函数体内", "function f() { return require('x'); }"},
		{"条件分支内", "if (cond) { const a = require('x'); }"},
		{"调用实参", "register(require('x'));"},
		{"表达式语句的成员调用", "require('x').init();"},
		{"三元表达式", "const a = cond ? require('x') : null;"},
	}
	for _, tc := range nested {
		t.Run(tc.name, func(t *testing.T) {
			site := analyzeOne(t, tc.source)
			if site.TopScope != nil {
				t.Errorf("Expected nested call site, got top-scope binding %+v", site.TopScope)
			}
		})
	}
}
