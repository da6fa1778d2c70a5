package model

// ResolvedAlias 描述了一次裸说明符 (bare specifier) 的别名解析结果。
// Find 是源码中书写的前缀, Replacement 是对应的文件系统绝对前缀。
// 动态引擎用它把 glob 展开得到的文件路径翻译回调用方原本书写的别名形式,
// 保证分发函数的 key 与运行期求值出的字符串一致。
type ResolvedAlias struct {
	Find        string `json:"Find"`
	Replacement string `json:"Replacement"`
}
