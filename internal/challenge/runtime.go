// Package challenge runs the daily challenge instances: starting them,
// applying progress updates and deciding when one is complete.
package challenge

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/model"
)

var (
	ErrProgressMismatch = errors.New("progress type does not match challenge")
	ErrNotCounter       = errors.New("challenge is not a counter")
	ErrNotTimer         = errors.New("challenge is not a timer")
)

// Runtime applies the instance state machine to a learner's challenge list.
// It is stateless apart from the calendar location and the id source.
type Runtime struct {
	loc   *time.Location
	newID func() string
}

func NewRuntime(loc *time.Location) *Runtime {
	if loc == nil {
		loc = time.Local
	}
	return &Runtime{
		loc:   loc,
		newID: func() string { return uuid.New().String() },
	}
}

func (r *Runtime) Location() *time.Location {
	return r.loc
}

// Start creates a new instance of the template. It returns nil without a
// notice for an unknown template, and nil with a "Challenge Active" notice
// when an incomplete instance of the template was already started today.
func (r *Runtime) Start(instances []*model.UserChallenge, templateID string, now time.Time) (*model.UserChallenge, *model.Notice) {
	tpl, ok := catalog.ChallengeByID(templateID)
	if !ok {
		return nil, nil
	}

	for _, uc := range instances {
		if uc.ChallengeID == templateID && !uc.IsCompleted && r.SameDay(uc.StartedAt, now) {
			return nil, activeNotice()
		}
	}

	uc := &model.UserChallenge{
		ID:              r.newID(),
		ChallengeID:     tpl.ID,
		InteractionType: tpl.InteractionType,
		StartedAt:       now,
		Progress:        tpl.InitialProgress(),
	}
	return uc, startedNotice(tpl)
}

// Update is the outcome of a progress update.
type Update struct {
	Instance *model.UserChallenge
	// JustCompleted is set only on the first transition into completed.
	JustCompleted bool
	Notice        *model.Notice
}

// UpdateProgress replaces the payload of an instance and re-evaluates its
// completion predicate. Unknown instances yield a nil Update. Completed
// instances are frozen and returned unchanged.
func (r *Runtime) UpdateProgress(instances []*model.UserChallenge, instanceID string, progress model.Progress, now time.Time) (*Update, error) {
	uc := Find(instances, instanceID)
	if uc == nil {
		return nil, nil
	}
	tpl, ok := catalog.ChallengeByID(uc.ChallengeID)
	if !ok {
		return nil, nil
	}
	if uc.IsCompleted {
		return &Update{Instance: uc}, nil
	}

	p, err := conform(tpl, progress)
	if err != nil {
		return nil, err
	}
	uc.Progress = p

	if !p.Satisfied() {
		return &Update{Instance: uc}, nil
	}

	at := now
	uc.IsCompleted = true
	uc.CompletedAt = &at
	uc.PointsEarned = tpl.Points
	return &Update{Instance: uc, JustCompleted: true, Notice: completedNotice(tpl)}, nil
}

// Increment bumps a counter instance by one.
func (r *Runtime) Increment(instances []*model.UserChallenge, instanceID string, now time.Time) (*Update, error) {
	uc := Find(instances, instanceID)
	if uc == nil {
		return nil, nil
	}
	cp, ok := uc.Progress.(model.CounterProgress)
	if !ok {
		return nil, ErrNotCounter
	}
	if uc.IsCompleted {
		return &Update{Instance: uc}, nil
	}
	cp.Count++
	return r.UpdateProgress(instances, instanceID, cp, now)
}

// conform checks the payload type against the template and re-stamps the
// template-owned fields so a client can't move the goalposts.
func conform(tpl catalog.Challenge, progress model.Progress) (model.Progress, error) {
	if progress == nil || progress.Type() != tpl.InteractionType {
		return nil, ErrProgressMismatch
	}
	switch p := progress.(type) {
	case model.SimpleProgress:
		return p, nil
	case model.CounterProgress:
		if p.Count < 0 {
			p.Count = 0
		}
		p.Target = tpl.Target()
		return p, nil
	case model.TimerProgress:
		if p.Seconds < 0 {
			p.Seconds = 0
		}
		p.Target = tpl.TimerSeconds()
		return p, nil
	case model.ChecklistProgress:
		allowed := make(map[string]bool, len(tpl.Items))
		for _, item := range tpl.Items {
			allowed[item] = true
		}
		done := make([]string, 0, len(p.Completed))
		for _, item := range p.Completed {
			if allowed[item] {
				done = append(done, item)
				delete(allowed, item)
			}
		}
		return model.ChecklistProgress{Items: append([]string{}, tpl.Items...), Completed: done}, nil
	}
	return nil, ErrProgressMismatch
}

func Find(instances []*model.UserChallenge, instanceID string) *model.UserChallenge {
	for _, uc := range instances {
		if uc.ID == instanceID {
			return uc
		}
	}
	return nil
}

// SameDay compares calendar dates in the runtime's location.
func (r *Runtime) SameDay(a, b time.Time) bool {
	ya, ma, da := a.In(r.loc).Date()
	yb, mb, db := b.In(r.loc).Date()
	return ya == yb && ma == mb && da == db
}

// Today returns the instances started on now's calendar day.
func (r *Runtime) Today(instances []*model.UserChallenge, now time.Time) []*model.UserChallenge {
	out := []*model.UserChallenge{}
	for _, uc := range instances {
		if r.SameDay(uc.StartedAt, now) {
			out = append(out, uc)
		}
	}
	return out
}

// Available lists the templates with no instance started today.
func (r *Runtime) Available(instances []*model.UserChallenge, now time.Time) []catalog.Challenge {
	started := map[string]bool{}
	for _, uc := range r.Today(instances, now) {
		started[uc.ChallengeID] = true
	}
	out := []catalog.Challenge{}
	for _, c := range catalog.Challenges() {
		if !started[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func Completed(instances []*model.UserChallenge) []*model.UserChallenge {
	out := []*model.UserChallenge{}
	for _, uc := range instances {
		if uc.IsCompleted {
			out = append(out, uc)
		}
	}
	return out
}

func TotalPoints(instances []*model.UserChallenge) int {
	total := 0
	for _, uc := range instances {
		if uc.IsCompleted {
			total += uc.PointsEarned
		}
	}
	return total
}
