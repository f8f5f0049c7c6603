package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 上传结果标签
const (
	UploadSuccess  = "success"
	UploadRejected = "rejected"
	UploadError    = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filemanager_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filemanager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filemanager_uploads_total",
			Help: "Total number of uploads by outcome",
		},
		[]string{"status"},
	)

	uploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filemanager_upload_bytes_total",
			Help: "Total bytes stored by successful uploads",
		},
	)

	storageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filemanager_storage_operation_duration_seconds",
			Help:    "Storage backend operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation", "status"},
	)

	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filemanager_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"path"},
	)
)

// Handler Prometheus 指标接口
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest 记录一次 HTTP 请求,path 应为路由模板而非原始 URL
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordUpload 记录上传结果,只有成功时累计字节数
func RecordUpload(status string, bytes int64) {
	uploadsTotal.WithLabelValues(status).Inc()
	if status == UploadSuccess && bytes > 0 {
		uploadBytesTotal.Add(float64(bytes))
	}
}

// RecordStorageOperation 记录存储后端操作耗时
func RecordStorageOperation(backend, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	storageOperationDuration.WithLabelValues(backend, operation, status).Observe(duration.Seconds())
}

// RecordRateLimited 记录被限流的请求
func RecordRateLimited(path string) {
	rateLimitedTotal.WithLabelValues(path).Inc()
}
