package point

import "strings"

// Item 回收品項（靜態參考資料，本系統不修改）
type Item struct {
	id    ItemID
	title string
	image string // uploads 目錄下的檔名
}

// ReconstructItem 從持久化資料重建品項
func ReconstructItem(id ItemID, title, image string) *Item {
	return &Item{id: id, title: title, image: image}
}

func (i *Item) ID() ItemID { return i.id }
func (i *Item) Title() string { return i.title }
func (i *Item) Image() string { return i.image }

// ImageURL 組合品項圖示的絕對網址：<baseURL>/uploads/<image>
func (i *Item) ImageURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/uploads/" + i.image
}
