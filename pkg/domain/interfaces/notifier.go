package interfaces

import (
	"context"

	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// Notifier delivers a rendered report
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}
