package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AdrianWangs/go-jstring/pkg/logger"
)

// ErrorBody 是所有错误响应的JSON格式
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteError 以JSON格式写入错误响应
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorBody{Error: message}); err != nil {
		logger.Errorf("写入错误响应失败: %v", err)
	}
}

// LoggingMiddleware 创建一个记录请求日志的中间件
func LoggingMiddleware() MiddlewareFunc {
	return func(next Handler) Handler {
		return HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// 包装ResponseWriter以捕获状态码
			wrapper := &responseWriterWrapper{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapper, r)

			logger.WithFields(logger.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   wrapper.statusCode,
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}

// RecoveryMiddleware 创建一个恢复中间件，防止程序崩溃
func RecoveryMiddleware() MiddlewareFunc {
	return func(next Handler) Handler {
		return HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Errorf("处理请求 %s 时发生错误: %v", r.URL.Path, err)
					WriteError(w, http.StatusInternalServerError, fmt.Sprintf("internal server error: %v", err))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// MethodMiddleware 创建一个检查HTTP方法的中间件
func MethodMiddleware(method string) MiddlewareFunc {
	return func(next Handler) Handler {
		return HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.Header().Set("Allow", method)
				WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriterWrapper 包装http.ResponseWriter以捕获状态码
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader 重写WriteHeader方法以捕获状态码
func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
