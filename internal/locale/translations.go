package locale

// Table is a nested string table for one language. Values are either strings
// or nested Tables; keys are addressed with dot paths ("popup.noTime").
type Table map[string]any

// DefaultLanguage is the fallback for missing keys and unknown language codes.
const DefaultLanguage = "zh-Hans"

var translations = map[string]Table{
	"zh-Hans": {
		"_locale":       "zh-CN",
		"documentTitle": "Open Street Arena 地图",
		"language": Table{
			"en":     "English",
			"zhHans": "中文",
			"zhHant": "繁体中文",
		},
		"topbar": Table{
			"title":         "Open Street Arena",
			"languageLabel": "语言",
			"navigation":    "页面切换",
		},
		"nav": Table{
			"backHome":    "返回首页",
			"map":         "擂台地图",
			"leaderboard": "开放街头排行榜",
			"report":      "报告袭击事件",
			"all":         "查看全部事件",
		},
		"controls": Table{
			"district":     "地区",
			"allDistricts": "全部地区",
			"period":       "时间段",
			"allPeriods":   "全部时段",
			"heat":         "热力图",
		},
		"periodLabels": Table{
			"morning":   "早",
			"noon":      "中",
			"afternoon": "下",
			"evening":   "晚",
			"night":     "夜",
			"midnight":  "半夜",
			"dawn":      "凌晨",
			"unknown":   "未知",
		},
		"datasetLabels": Table{
			"local-json": "本地 JSON (./data/incidents.json)",
			"local-csv":  "本地 CSV (./data/incidents.csv)",
			"sheets-csv": "Google Sheets CSV",
			"fallback":   "资料来源",
		},
		"summary":        "{label} · 显示 {filtered} / {total}",
		"summaryInitial": "{label} · 事件总数 {total}",
		"disclaimer": Table{
			"general": "数据仅供信息参考，来源见事件详情链接；不构成治安判断或执法依据。",
		},
		"popup": Table{
			"time":              "时间",
			"district":          "地区",
			"category":          "分类",
			"source":            "来源",
			"notes":             "备注",
			"noTime":            "未提供",
			"noSource":          "未提供",
			"noNotes":           "暂无补充内容",
			"noCategory":        "未标注",
			"noDistrict":        "未标注",
			"locationSeparator": " · ",
		},
		"messages": Table{
			"loadFailed": "资料载入失败，请稍后再试。",
		},
	},
	"en": {
		"_locale":       "en-GB",
		"documentTitle": "Open Street Arena Map",
		"language": Table{
			"en":     "English",
			"zhHans": "Chinese",
			"zhHant": "Traditional Chinese",
		},
		"topbar": Table{
			"title":         "Open Street Arena",
			"languageLabel": "Language",
			"navigation":    "Navigation",
		},
		"nav": Table{
			"backHome":    "Back to Home",
			"map":         "Arena Map",
			"leaderboard": "Open Street Leaderboard",
			"report":      "Report an Incident",
			"all":         "View All Incidents",
		},
		"controls": Table{
			"district":     "District",
			"allDistricts": "All Districts",
			"period":       "Time Period",
			"allPeriods":   "All Periods",
			"heat":         "Heatmap",
		},
		"periodLabels": Table{
			"morning":   "Morning",
			"noon":      "Midday",
			"afternoon": "Afternoon",
			"evening":   "Evening",
			"night":     "Night",
			"midnight":  "Midnight",
			"dawn":      "Dawn",
			"unknown":   "Unknown",
		},
		"datasetLabels": Table{
			"local-json": "Local JSON (./data/incidents.json)",
			"local-csv":  "Local CSV (./data/incidents.csv)",
			"sheets-csv": "Google Sheets CSV",
			"fallback":   "Data source",
		},
		"summary":        "{label} · Showing {filtered} / {total}",
		"summaryInitial": "{label} · Total {total} incidents",
		"disclaimer": Table{
			"general": "Data is for information only; see incident details for sources. Not an indicator of public safety or law-enforcement advice.",
		},
		"popup": Table{
			"time":              "Time",
			"district":          "District",
			"category":          "Category",
			"source":            "Source",
			"notes":             "Notes",
			"noTime":            "Not provided",
			"noSource":          "Not provided",
			"noNotes":           "No additional notes",
			"noCategory":        "Not specified",
			"noDistrict":        "Not specified",
			"locationSeparator": " · ",
		},
		"messages": Table{
			"loadFailed": "Failed to load data. Please try again later.",
		},
	},
}
