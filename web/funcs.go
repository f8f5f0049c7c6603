package web

import (
	"html/template"
	"time"
)

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatTime": formatTime,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
