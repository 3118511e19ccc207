package dto

// ToggleData 点赞 / 订阅切换结果
type ToggleData struct {
	State bool `json:"state"`
}
