package core

// Language 是注册表使用的语言标识
type Language string

const (
	LangJavaScript Language = "javascript"
)
