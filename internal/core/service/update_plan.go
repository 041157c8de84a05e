package service

import (
	"time"

	"github.com/entitydesk/entity-api/internal/core/ports"
)

// updatePlan accumulates validated (column, value) assignments for a partial
// update, preserving the order in which fields were checked. Columns are fixed
// string literals owned by the services; caller input only ever appears as a
// bound value.
type updatePlan struct {
	assignments []ports.Assignment
}

func (p *updatePlan) set(column string, value any) {
	p.assignments = append(p.assignments, ports.Assignment{Column: column, Value: value})
}

func (p *updatePlan) empty() bool {
	return len(p.assignments) == 0
}

// finish appends the updated_at touch and returns the final assignment list.
// Must only be called on a non-empty plan; an empty plan is a rejected
// request, not a silent success.
func (p *updatePlan) finish(now time.Time) []ports.Assignment {
	p.set("updated_at", now)
	return p.assignments
}
