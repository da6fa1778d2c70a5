package javascript

import "strings"

// nodeBuiltinModules 是 Node.js 内建模块表。命中的 require 原样保留:
// 把内建模块改写成 import 只会把平台依赖泄漏进打包产物。
// 更新方式: node -p "require('module').builtinModules.filter(m => !m.startsWith('_') && !m.includes('/')).join('\n')"
var nodeBuiltinModules = map[string]bool{
	"assert":              true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// isNodeBuiltin 判断模块 id 是否为内建模块。
// 兼容 "node:fs" 前缀与 "fs/promises" 这类子路径。
func isNodeBuiltin(id string) bool {
	id = strings.TrimPrefix(id, "node:")
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	return nodeBuiltinModules[id]
}
