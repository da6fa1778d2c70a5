package core

import (
	"fmt"

	"github.com/CodMac/require-lens/model"
)

// TransformContext 存储了单个文件一次转换的全部可变状态:
// 单调递增的标识符计数器、动态引擎的导入绑定缓存、编辑缓冲与转换记录。
// 每次转换新建, 转换结束即丢弃, 不跨文件共享。
type TransformContext struct {
	FilePath string
	Source   []byte
	Config   *model.Config
	Buffer   *EditBuffer
	Record   *model.TransformRecord

	counter  int
	bindings map[string]string // 已解析文件路径 -> 已生成的绑定名
}

// NewTransformContext 创建一个新的 TransformContext 实例。
func NewTransformContext(filePath string, source []byte, cfg *model.Config) *TransformContext {
	return &TransformContext{
		FilePath: filePath,
		Source:   source,
		Config:   cfg,
		Buffer:   NewEditBuffer(),
		Record:   &model.TransformRecord{FilePath: filePath},
		bindings: make(map[string]string),
	}
}

// NextImportName 分配一个不会冲突的命名空间导入绑定名
func (tc *TransformContext) NextImportName() string {
	name := fmt.Sprintf("__cjsImport%d", tc.counter)
	tc.counter++
	return name
}

// NextDispatchName 分配一个分发函数名
func (tc *TransformContext) NextDispatchName() string {
	name := fmt.Sprintf("__cjsDynamicRequire%d", tc.counter)
	tc.counter++
	return name
}

// CachedBinding 查询某个已解析文件是否已有提升的导入绑定
func (tc *TransformContext) CachedBinding(resolvedPath string) (string, bool) {
	name, ok := tc.bindings[resolvedPath]
	return name, ok
}

// CacheBinding 记录文件路径与绑定名的映射, 同一文件最多提升一条 import
func (tc *TransformContext) CacheBinding(resolvedPath, name string) {
	tc.bindings[resolvedPath] = name
}

// NodeText 返回节点覆盖的源码文本
func (tc *TransformContext) NodeText(start, end uint) string {
	return string(tc.Source[start:end])
}

// AddRewrite 记录一个调用点的处理结果
func (tc *TransformContext) AddRewrite(r *model.Rewrite) {
	tc.Record.Rewrites = append(tc.Record.Rewrites, r)
}

// AddImport 记录一条提升的 import
func (tc *TransformContext) AddImport(imp *model.HoistedImport) {
	tc.Record.Imports = append(tc.Record.Imports, imp)
}
