package point

import "github.com/jackyeh168/ecoleta/src/internal/domain/point"

// PointResult 據點的輸出表示
//
// ItemIDs 僅在註冊與單筆查詢時填入；列表查詢為空
type PointResult struct {
	ID        int64
	Name      string
	Email     string
	WhatsApp  string
	Image     string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	ItemIDs   []int64
}

// ItemResult 品項的輸出表示
type ItemResult struct {
	ID       int64
	Title    string
	ImageURL string
}

func toPointResult(p *point.Point) PointResult {
	return PointResult{
		ID:        p.ID().Int64(),
		Name:      p.Name(),
		Email:     p.Email(),
		WhatsApp:  p.WhatsApp(),
		Image:     p.Image(),
		Latitude:  p.Coordinates().Latitude(),
		Longitude: p.Coordinates().Longitude(),
		City:      p.City(),
		UF:        p.UF().String(),
		ItemIDs:   p.Items().Int64s(),
	}
}
