package subscriber

import (
	"context"

	"github.com/homesite/backend/internal/eventbus"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

// VisitRecorder 订阅访问事件并落库
type VisitRecorder struct {
	visits repository.VisitRepository
}

func NewVisitRecorder(visits repository.VisitRepository) *VisitRecorder {
	return &VisitRecorder{visits: visits}
}

// Register 注册到事件总线，返回取消订阅函数
func (r *VisitRecorder) Register(bus *eventbus.VisitEventBus) func() {
	return bus.Subscribe(eventbus.VisitEventPageView, r.onPageView)
}

func (r *VisitRecorder) onPageView(ctx context.Context, event eventbus.VisitEvent) error {
	visit := &model.Visit{
		Page:      event.Page,
		UserAgent: event.UserAgent,
		IP:        event.IP,
		SessionID: event.SessionID,
	}
	if err := r.visits.Create(visit); err != nil {
		klog.Errorf("写入访问记录失败: %v", err)
		return err
	}
	return nil
}
