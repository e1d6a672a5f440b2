package demo

// Info is the banner text shown while a deployment runs in demo mode.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AccountHint string `json:"accountHint"`
}

var modeInfo = Info{
	Title:       "演示模式",
	Description: "当前处于演示模式，所有数据均为模拟数据，不会产生实际调用。",
	AccountHint: "可使用以下演示账号登录：",
}

// ModeInfo returns the demo mode banner text.
func ModeInfo() Info {
	return modeInfo
}
