// Package router 提供统一的HTTP路由管理
package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/AdrianWangs/go-jstring/pkg/logger"
)

// Handler 是一个包装了http.HandlerFunc的接口
type Handler interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// HandlerFunc 是一个处理HTTP请求的函数类型
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

// ServeHTTP 实现http.Handler接口
func (f HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f(w, r)
}

// MiddlewareFunc 是一个中间件函数类型
type MiddlewareFunc func(Handler) Handler

// Router 负责路由注册和分发请求
type Router struct {
	mux         *http.ServeMux
	patterns    []string
	middlewares []MiddlewareFunc
}

// New 创建一个新的路由器
func New() *Router {
	return &Router{
		mux: http.NewServeMux(),
	}
}

// Use 添加一个全局中间件，只作用于之后注册的路由
func (r *Router) Use(middleware MiddlewareFunc) {
	r.middlewares = append(r.middlewares, middleware)
}

// Register 注册路由和处理器
func (r *Router) Register(pattern string, handler Handler) {
	r.mux.Handle(pattern, chain(handler, r.middlewares))
	r.patterns = append(r.patterns, pattern)
	logger.Debugf("已注册路由: %s", pattern)
}

// RegisterFunc 注册一个处理函数
func (r *Router) RegisterFunc(pattern string, handlerFunc HandlerFunc) {
	r.Register(pattern, handlerFunc)
}

// Routes 返回已注册的路由，按字典序排列
func (r *Router) Routes() []string {
	out := make([]string, len(r.patterns))
	copy(out, r.patterns)
	sort.Strings(out)
	return out
}

// Group 创建一个子路由组
func (r *Router) Group(prefix string) *RouterGroup {
	return &RouterGroup{
		prefix: prefix,
		router: r,
	}
}

// ServeHTTP 实现http.Handler接口，将请求转发给ServeMux
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RouterGroup 表示一个路由组，所有注册的路由都将添加相同的前缀
type RouterGroup struct {
	prefix      string
	router      *Router
	middlewares []MiddlewareFunc
}

// Use 为当前路由组添加中间件
func (g *RouterGroup) Use(middleware MiddlewareFunc) {
	g.middlewares = append(g.middlewares, middleware)
}

// Group 创建一个嵌套路由组，继承父组的中间件
func (g *RouterGroup) Group(relPrefix string) *RouterGroup {
	return &RouterGroup{
		prefix:      joinPaths(g.prefix, relPrefix),
		router:      g.router,
		middlewares: append([]MiddlewareFunc(nil), g.middlewares...),
	}
}

// Register 在路由组注册路由
func (g *RouterGroup) Register(pattern string, handler Handler) {
	g.router.Register(joinPaths(g.prefix, pattern), chain(handler, g.middlewares))
}

// RegisterFunc 在路由组注册处理函数
func (g *RouterGroup) RegisterFunc(pattern string, handlerFunc HandlerFunc) {
	g.Register(pattern, handlerFunc)
}

// chain 按注册顺序包装中间件，第一个中间件位于最外层
func chain(handler Handler, middlewares []MiddlewareFunc) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// 工具函数，连接两个路径
func joinPaths(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}

	aSlash := strings.HasSuffix(a, "/")
	bSlash := strings.HasPrefix(b, "/")

	switch {
	case aSlash && bSlash:
		return a + b[1:]
	case !aSlash && !bSlash:
		return a + "/" + b
	default:
		return a + b
	}
}
