package javascript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CodMac/require-lens/core"
	"github.com/CodMac/require-lens/model"
)

// Resolver 负责裸/别名说明符到文件系统前缀的解析, 以及 Node 内建模块判定。
// 解析结果缓存为只读数据, 可被多个文件的并发转换共享查询。
type Resolver struct {
	root    string
	aliases map[string]string
	cache   sync.Map // specifier -> cacheEntry
}

type cacheEntry struct {
	alias *model.ResolvedAlias // nil 表示未命中
}

func NewResolver(cfg *model.Config) *Resolver {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &Resolver{root: abs, aliases: cfg.Aliases}
}

// Resolve 用最长前缀匹配别名表解析裸说明符, 并要求解析出的目录真实存在。
// 未命中返回包裹 core.ErrUnresolvedSpecifier 的错误。
func (r *Resolver) Resolve(ctx context.Context, specifier, importerPath string) (*model.ResolvedAlias, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if v, ok := r.cache.Load(specifier); ok {
		entry := v.(cacheEntry)
		if entry.alias == nil {
			return nil, fmt.Errorf("%w: %s", core.ErrUnresolvedSpecifier, specifier)
		}
		return entry.alias, nil
	}

	alias := r.resolveUncached(specifier)
	r.cache.Store(specifier, cacheEntry{alias: alias})
	if alias == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrUnresolvedSpecifier, specifier)
	}
	return alias, nil
}

func (r *Resolver) resolveUncached(specifier string) *model.ResolvedAlias {
	// 1. 最长前缀命中别名
	var bestFind, bestRepl string
	for find, repl := range r.aliases {
		if !aliasMatches(specifier, find) {
			continue
		}
		if len(find) > len(bestFind) {
			bestFind, bestRepl = find, repl
		}
	}
	if bestFind == "" {
		return nil
	}

	// 2. 替换目标挂到项目根
	target := bestRepl
	if !filepath.IsAbs(target) {
		target = filepath.Join(r.root, target)
	}
	rest := strings.TrimPrefix(specifier, bestFind)
	resolved := filepath.Join(target, filepath.FromSlash(strings.TrimPrefix(rest, "/")))

	// 3. 解析出的目录必须存在, 否则视为失败
	if info, err := os.Stat(resolved); err != nil || !info.IsDir() {
		return nil
	}

	return &model.ResolvedAlias{Find: specifier, Replacement: resolved}
}

// aliasMatches 判断 find 是否在路径段边界上匹配说明符前缀:
// "@" 匹配 "@/views", 但 "@vue" 不被 "@v" 匹配
func aliasMatches(specifier, find string) bool {
	if !strings.HasPrefix(specifier, find) {
		return false
	}
	if len(specifier) == len(find) || strings.HasSuffix(find, "/") {
		return true
	}
	return specifier[len(find)] == '/'
}

// IsBuiltin 判断模块 id 是否为 Node 内建模块, 兼容 node: 前缀与子路径
func (r *Resolver) IsBuiltin(id string) bool {
	return isNodeBuiltin(id)
}
