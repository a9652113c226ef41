// FILE: loggen/src/cmd/loggen/status.go
package main

import (
	"context"
	"time"

	"loggen/src/internal/service"
)

// statusReporter periodically logs generator counters
func statusReporter(ctx context.Context, svc *service.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("msg", "Panic in status reporter",
							"component", "status_reporter",
							"panic", r)
					}
				}()

				stats := svc.GetGlobalStats()
				logger.Debug("msg", "Status report",
					"component", "status_reporter",
					"generators", stats["total_generators"],
					"total_written", stats["total_written"],
					"total_failed", stats["total_failed"],
					"uptime_seconds", stats["uptime_seconds"])

				for _, comp := range svc.Components() {
					logGeneratorStatus(comp)
				}
			}()
		}
	}
}

// logGeneratorStatus logs the counters of one component
func logGeneratorStatus(comp *service.Component) {
	gs := comp.Generator.GetStats()
	fields := []any{
		"msg", "Generator status",
		"component", "status_reporter",
		"source", comp.Name,
		"state", gs.State.String(),
		"written", gs.TotalWritten,
	}
	if gs.TotalFailed > 0 {
		fields = append(fields, "failed", gs.TotalFailed)
	}
	if !gs.LastEntry.IsZero() {
		fields = append(fields, "last_entry", gs.LastEntry.Format(time.RFC3339))
	}
	logger.Debug(fields...)
}
