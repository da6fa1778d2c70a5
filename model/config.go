package model

// Config 是一次转换的全部配置输入。所有字段在转换期间只读。
type Config struct {
	// Extensions 动态 glob 补全使用的扩展名集合 (含点, e.g. ".vue")。
	// 同时用于匹配结果生成无扩展名 key 时的扩展名剥离。
	Extensions []string `yaml:"extensions"`

	// Loose 控制动态 glob 的深度放宽:
	// true  -> 尾部单层通配符放宽为任意深度 (./foo/* -> ./foo/**/*), 尽可能多匹配
	// false -> 只匹配字面 glob 形状
	Loose bool `yaml:"loose"`

	// Aliases 裸说明符前缀 -> 文件系统路径 (绝对, 或相对于 Root)
	// e.g., "@" -> "./src"
	Aliases map[string]string `yaml:"aliases"`

	// Root 项目根目录, 用于解析相对形式的别名目标
	Root string `yaml:"-"`
}

// DefaultExtensions 返回内建识别的扩展名全集:
// JS/TS 源码、单文件组件、常见资源与样式表。
func DefaultExtensions() []string {
	return []string{
		".js", ".jsx", ".mjs", ".cjs",
		".ts", ".tsx", ".mts",
		".vue", ".svelte",
		".json",
		".css", ".scss", ".sass", ".less", ".styl",
	}
}

// NewConfig 返回带默认扩展名集合的配置
func NewConfig() *Config {
	return &Config{
		Extensions: DefaultExtensions(),
		Loose:      true,
		Aliases:    map[string]string{},
	}
}
