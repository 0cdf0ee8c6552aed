package routes

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopLoader() gin.HandlerFunc {
	return func(c *gin.Context) { c.Status(http.StatusOK) }
}

func TestRegistry_PreloadUnknownPathIsNoop(t *testing.T) {
	registry := NewRegistry()
	registry.Register("/", true, noopLoader)

	// 未注册路径不报错，也不产生任何状态变化
	assert.NotPanics(t, func() {
		registry.PreloadRoute("/nonexistent")
	})
	assert.Equal(t, []RouteStatus{{Path: "/", Preload: true, Loaded: false}}, registry.Entries())
}

func TestRegistry_LoaderResolvedExactlyOnce(t *testing.T) {
	var loads atomic.Int32
	registry := NewRegistry()
	registry.Register("/analytics", false, func() gin.HandlerFunc {
		loads.Add(1)
		return func(c *gin.Context) { c.Status(http.StatusOK) }
	})

	// 首次导航解析加载器
	first, ok := registry.Resolve("/analytics")
	require.True(t, ok)
	require.NotNil(t, first)
	assert.Equal(t, int32(1), loads.Load())

	// 再次导航和显式预载都不再触发加载器
	second, ok := registry.Resolve("/analytics")
	require.True(t, ok)
	require.NotNil(t, second)
	registry.PreloadRoute("/analytics")
	assert.Equal(t, int32(1), loads.Load())
}

func TestRegistry_LoaderOnceUnderConcurrentNavigation(t *testing.T) {
	var loads atomic.Int32
	registry := NewRegistry()
	registry.Register("/alerts", false, func() gin.HandlerFunc {
		loads.Add(1)
		return func(c *gin.Context) { c.Status(http.StatusOK) }
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.Resolve("/alerts")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}

func TestRegistry_PreloadEagerOnlyMarkedEntries(t *testing.T) {
	var homeLoads, analyticsLoads atomic.Int32
	registry := NewRegistry()
	registry.Register("/", true, func() gin.HandlerFunc {
		homeLoads.Add(1)
		return func(c *gin.Context) { c.Status(http.StatusOK) }
	})
	registry.Register("/analytics", false, func() gin.HandlerFunc {
		analyticsLoads.Add(1)
		return func(c *gin.Context) { c.Status(http.StatusOK) }
	})

	registry.PreloadEager()

	// 只有首页被预载，其余按需加载
	assert.Equal(t, int32(1), homeLoads.Load())
	assert.Zero(t, analyticsLoads.Load())

	statuses := registry.Entries()
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Loaded)
	assert.False(t, statuses[1].Loaded)
}

func TestRegistry_DuplicateRegistrationKeepsFirstEntry(t *testing.T) {
	var firstLoads, secondLoads atomic.Int32
	registry := NewRegistry()
	registry.Register("/documents", false, func() gin.HandlerFunc {
		firstLoads.Add(1)
		return func(c *gin.Context) { c.Status(http.StatusOK) }
	})
	registry.Register("/documents", true, func() gin.HandlerFunc {
		secondLoads.Add(1)
		return func(c *gin.Context) { c.Status(http.StatusOK) }
	})

	registry.PreloadRoute("/documents")

	assert.Equal(t, int32(1), firstLoads.Load())
	assert.Zero(t, secondLoads.Load())
	require.Len(t, registry.Entries(), 1)
	assert.False(t, registry.Entries()[0].Preload)
}

func TestRegistry_HandlerResolvesOnFirstRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var loads atomic.Int32
	registry := NewRegistry()
	registry.Register("/alerts", false, func() gin.HandlerFunc {
		loads.Add(1)
		return func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"view": "alerts"})
		}
	})

	r := gin.New()
	r.GET("/views/alerts", registry.Handler("/alerts"))

	// 挂载路由本身不触发加载
	assert.Zero(t, loads.Load())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/views/alerts", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, int32(1), loads.Load())
}
