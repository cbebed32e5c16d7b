// Package notification pushes cache invalidations to admin clients over
// SSE. It subscribes to the domain event bus and maps each event to the
// query topic the client should refetch, keeping publishers unaware of
// who is listening.
package notification

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pos_admin_backend/internal/events"
	apphttp "pos_admin_backend/internal/http"
	"pos_admin_backend/internal/notification/sse"
	"pos_admin_backend/platform/httpkit"
	"pos_admin_backend/platform/logger"
)

// topicByEvent maps domain event names to the client-side query topic
// invalidated by them.
var topicByEvent = map[string]string{
	"catalog.category.created":  "categories",
	"catalog.category.updated":  "categories",
	"catalog.category.deleted":  "categories",
	"catalog.product.created":   "products",
	"catalog.product.updated":   "products",
	"catalog.product.deleted":   "products",
	"catalog.extra.created":     "extras",
	"catalog.extra.updated":     "extras",
	"catalog.extra.deleted":     "extras",
	"sales.sale.submitted":      "sales",
	"sales.sale.status_changed": "sales",
	"sales.sale.deleted":        "sales",
	"reports.daily.generated":   "reports",
}

// Module is the notification module implementing http.Module.
type Module struct {
	hub *sse.Hub
}

// NewModule creates the notification module and wires it to the bus.
func NewModule(bus events.Bus, log *logger.Logger) *Module {
	hub := sse.NewHub(log)

	for eventName, topic := range topicByEvent {
		name, t := eventName, topic
		bus.Subscribe(name, events.HandlerFunc(func(_ context.Context, _ events.Event) error {
			hub.Broadcast(sse.Invalidation{Topic: t, Reason: name})
			return nil
		}))
	}

	return &Module{hub: hub}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// Hub returns the SSE hub, used for graceful shutdown.
func (m *Module) Hub() *sse.Hub {
	return m.hub
}

// RegisterRoutes mounts the SSE stream endpoint. EventSource cannot set
// headers, so the auth middleware also accepts the token as a query
// param on this route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/notifications/stream", m.hub.Handler(func(c *gin.Context) (uuid.UUID, bool) {
		identity := httpkit.MustGetIdentity(c)
		if identity == nil {
			return uuid.Nil, false
		}
		return identity.UserID(), true
	}))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
