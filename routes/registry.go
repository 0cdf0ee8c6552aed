package routes

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// ViewLoader 延迟构造一个视图处理函数。
// 只有在首次导航或显式预载时才会被调用。
type ViewLoader func() gin.HandlerFunc

// RouteEntry 描述一个可导航视图：路径、延迟加载器和预载标记
type RouteEntry struct {
	Path    string
	Preload bool

	loader  ViewLoader
	once    sync.Once
	loaded  atomic.Bool
	handler gin.HandlerFunc
}

// resolve 解析加载器，保证最多执行一次
func (e *RouteEntry) resolve() gin.HandlerFunc {
	e.once.Do(func() {
		e.handler = e.loader()
		e.loaded.Store(true)
	})
	return e.handler
}

// Loaded 返回该视图的加载器是否已经解析
func (e *RouteEntry) Loaded() bool {
	return e.loaded.Load()
}

// RouteStatus 视图加载状态，用于路由状态接口
type RouteStatus struct {
	Path    string `json:"path"`
	Preload bool   `json:"preload"`
	Loaded  bool   `json:"loaded"`
}

// Registry 维护视图路由表。
// 启动时不会加载全部视图模块，只有标记预载的条目（首页 "/"）会被立即解析。
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RouteEntry
	order   []string
}

// NewRegistry 创建一个空的路由注册表
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RouteEntry),
	}
}

// Register 注册一个视图条目。重复注册同一路径时保留首次注册的条目。
func (r *Registry) Register(path string, preload bool, loader ViewLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[path]; exists {
		log.Printf("路由 %s 已注册，忽略重复注册", path)
		return
	}

	r.entries[path] = &RouteEntry{
		Path:    path,
		Preload: preload,
		loader:  loader,
	}
	r.order = append(r.order, path)
}

// Resolve 按精确路径查找条目并解析其加载器。
// 返回的布尔值表示路径是否已注册。
func (r *Registry) Resolve(path string) (gin.HandlerFunc, bool) {
	r.mu.RLock()
	entry, ok := r.entries[path]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return entry.resolve(), true
}

// PreloadRoute 显式预载指定路径的视图。
// 未注册的路径不是错误，直接忽略。
func (r *Registry) PreloadRoute(path string) {
	r.mu.RLock()
	entry, ok := r.entries[path]
	r.mu.RUnlock()
	if !ok {
		return
	}
	entry.resolve()
}

// PreloadEager 解析所有标记为预载的条目，在应用启动时调用一次
func (r *Registry) PreloadEager() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, path := range r.order {
		if entry := r.entries[path]; entry.Preload {
			entry.resolve()
		}
	}
}

// Handler 返回一个按需解析视图的Gin处理函数。
// 首次请求触发加载器，之后复用同一个处理函数。
func (r *Registry) Handler(path string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		handler, ok := r.Resolve(path)
		if !ok {
			ctx.JSON(404, gin.H{"message": "视图不存在"})
			return
		}
		handler(ctx)
	}
}

// Entries 按注册顺序返回所有条目的加载状态
func (r *Registry) Entries() []RouteStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]RouteStatus, 0, len(r.order))
	for _, path := range r.order {
		entry := r.entries[path]
		statuses = append(statuses, RouteStatus{
			Path:    entry.Path,
			Preload: entry.Preload,
			Loaded:  entry.Loaded(),
		})
	}
	return statuses
}
