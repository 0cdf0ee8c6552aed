package models

// SeverityStyle 表示某个严重级别对应的前端样式标记
type SeverityStyle struct {
	Severity string `json:"severity"`
	Color    string `json:"color"`     // 主色调token
	Badge    string `json:"badge"`     // 徽标样式token
	Accent   string `json:"accent"`    // 强调色token
	SortRank int    `json:"sort_rank"` // 排序权重，critical优先
}

// 按严重级别的样式查找表，替代散落在各处的颜色判断分支
var severityStyleMap = map[string]SeverityStyle{
	SeverityCritical: {
		Severity: SeverityCritical,
		Color:    "red-600",
		Badge:    "badge-critical",
		Accent:   "red-100",
		SortRank: 0,
	},
	SeverityWarning: {
		Severity: SeverityWarning,
		Color:    "amber-500",
		Badge:    "badge-warning",
		Accent:   "amber-100",
		SortRank: 1,
	},
	SeverityInfo: {
		Severity: SeverityInfo,
		Color:    "sky-500",
		Badge:    "badge-info",
		Accent:   "sky-100",
		SortRank: 2,
	},
}

// StyleForSeverity 返回严重级别对应的样式，未知级别回退到info样式
func StyleForSeverity(severity string) SeverityStyle {
	if style, ok := severityStyleMap[severity]; ok {
		return style
	}
	return severityStyleMap[SeverityInfo]
}
