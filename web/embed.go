package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates
var Templates embed.FS

const templateRoot = "templates"

// ParseTemplates 解析所有内嵌模板,模板名为相对 templates 目录的路径,
// 如 "browser/filemanager_list.html"
func ParseTemplates() (*template.Template, error) {
	return parseFS(Templates, templateRoot)
}

func parseFS(fsys fs.FS, root string) (*template.Template, error) {
	tmpl := template.New("").Funcs(FuncMap())
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(p, root+"/")
		_, err = tmpl.New(name).Parse(string(content))
		return err
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}
