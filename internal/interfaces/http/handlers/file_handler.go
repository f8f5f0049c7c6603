package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// 模板名称,与 web/templates 下的相对路径一致
const (
	TemplateList   = "browser/filemanager_list.html"
	TemplateDetail = "browser/filemanager_detail.html"
	TemplateUpload = "filemanager_upload.html"
)

var pageFormats = []string{binding.MIMEHTML, binding.MIMEJSON}

// Browse 浏览目录
// @Summary 浏览目录
// @Description 列出目录内容,目录在前(大小为 "-"),文件在后;Accept 为 application/json 时返回 JSON
// @Tags 文件管理
// @Produce html
// @Produce json
// @Param path query string false "相对媒体根目录的路径,留空为根目录"
// @Success 200 {object} contracts.BrowseResult
// @Failure 400 {object} map[string]interface{} "非法路径"
// @Failure 500 {object} map[string]interface{} "存储错误"
// @Router /filemanager/ [get]
func Browse(c *gin.Context) {
	result, err := GetFileService(c).Browse(c.Request.Context(), c.Query("path"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  pageFormats,
		HTMLName: TemplateList,
		HTMLData: gin.H{
			"BasePath":    GetConfig(c).Server.MountPath(),
			"Path":        result.Path,
			"Breadcrumbs": result.Breadcrumbs,
			"Files":       result.Files,
		},
		JSONData: result,
	})
}

// Detail 文件详情
// @Summary 文件详情
// @Description 返回文件所在目录、文件名、大小和修改时间
// @Tags 文件管理
// @Produce html
// @Produce json
// @Param path query string true "文件相对路径"
// @Success 200 {object} contracts.DetailResult
// @Failure 400 {object} map[string]interface{} "非法路径"
// @Failure 500 {object} map[string]interface{} "存储错误"
// @Router /filemanager/detail/ [get]
func Detail(c *gin.Context) {
	result, err := GetFileService(c).Detail(c.Request.Context(), c.Query("path"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  pageFormats,
		HTMLName: TemplateDetail,
		HTMLData: gin.H{
			"BasePath":    GetConfig(c).Server.MountPath(),
			"Path":        result.Path,
			"Breadcrumbs": result.Breadcrumbs,
			"File":        result.File,
		},
		JSONData: result,
	})
}

// UploadForm 上传表单页面
// @Summary 上传表单
// @Description 渲染上传表单,表单提交到 upload/file/
// @Tags 文件管理
// @Produce html
// @Param path query string false "上传目标目录"
// @Success 200 {string} string "HTML"
// @Failure 400 {object} map[string]interface{} "非法路径"
// @Router /filemanager/upload/ [get]
func UploadForm(c *gin.Context) {
	result, err := GetFileService(c).Location(c.Request.Context(), c.Query("path"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	cfg := GetConfig(c)
	c.HTML(http.StatusOK, TemplateUpload, gin.H{
		"BasePath":    cfg.Server.MountPath(),
		"Path":        result.Path,
		"Breadcrumbs": result.Breadcrumbs,
		"MaxSizeMB":   cfg.Upload.MaxSizeMB,
	})
}
