package ports

import "go.trai.ch/prism/internal/core/domain"

// EventHandler receives progress and diagnostic events during an update.
//
//go:generate mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks
type EventHandler interface {
	Handle(ev domain.Event)
}
