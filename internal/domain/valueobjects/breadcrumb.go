package valueobjects

import "strings"

// Breadcrumb 导航面包屑
type Breadcrumb struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// BuildBreadcrumbs 按 "/" 拆分路径,第 i 项的 URL 为前 i+1 段的拼接
// 空段会被跳过,"a/b" -> [{a a} {b a/b}]
func BuildBreadcrumbs(relPath string) []Breadcrumb {
	crumbs := make([]Breadcrumb, 0)
	var segments []string
	for _, seg := range strings.Split(relPath, "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, seg)
		crumbs = append(crumbs, Breadcrumb{
			Label: seg,
			URL:   strings.Join(segments, "/"),
		})
	}
	return crumbs
}
