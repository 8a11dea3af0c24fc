package booking

import (
	"github.com/studysync/tutor-scheduler/internal/audit"
	"github.com/studysync/tutor-scheduler/internal/events"
)

// Narrow views of the audit and event dispatchers, so use cases can be
// tested without spinning up workers.

type auditor interface {
	Dispatch(audit.Event)
}

type publisher interface {
	Publish(events.Event)
}
