package main

import (
	"context"

	"pago/internal/gateway"
)

// dispatcherGroup fans one gateway event out to several dispatchers,
// e.g. HTTP webhooks plus the kafka sink. Each member already isolates
// its own failures.
type dispatcherGroup []gateway.Dispatcher

func (g dispatcherGroup) Trigger(ctx context.Context, event string, data any) {
	for _, d := range g {
		d.Trigger(ctx, event, data)
	}
}
