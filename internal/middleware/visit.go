package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/eventbus"
	"k8s.io/klog/v2"
)

// Visit 页面访问埋点：页面类 GET 请求异步发布访问事件，
// 不阻塞请求本身。
func Visit(bus *eventbus.VisitEventBus) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" || c.Writer.Status() >= 400 {
			return
		}
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/assets/") || path == "/favicon.ico" {
			return
		}

		event := eventbus.VisitEvent{
			Type:      eventbus.VisitEventPageView,
			Page:      path,
			UserAgent: c.Request.UserAgent(),
			IP:        c.ClientIP(),
			SessionID: c.GetHeader("X-Session-Id"),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := bus.Publish(ctx, eventbus.VisitEventPageView, event); err != nil {
				klog.V(6).Infof("发布访问事件失败: %v", err)
			}
		}()
	}
}
