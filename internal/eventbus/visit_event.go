package eventbus

type VisitEventType string

const (
	VisitEventPageView VisitEventType = "PageView"
)

type VisitEvent struct {
	Type      VisitEventType
	Page      string
	UserAgent string
	IP        string
	SessionID string
}

type VisitEventHandler = Handler[VisitEvent]
type VisitEventBus = Bus[VisitEventType, VisitEvent]

func NewVisitEventBus() *VisitEventBus {
	return NewBus[VisitEventType, VisitEvent]()
}
