package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

type InteractionType string

const (
	InteractionSimple    InteractionType = "simple"
	InteractionCounter   InteractionType = "counter"
	InteractionTimer     InteractionType = "timer"
	InteractionChecklist InteractionType = "checklist"
)

var ErrUnknownInteraction = errors.New("unknown interaction type")

// Progress is the per-type payload of a challenge instance. The set of
// implementations is closed: SimpleProgress, CounterProgress, TimerProgress
// and ChecklistProgress.
type Progress interface {
	Type() InteractionType
	// Satisfied is the completion predicate of the interaction type.
	Satisfied() bool
	sealed()
}

type SimpleProgress struct {
	Completed bool `json:"completed"`
}

type CounterProgress struct {
	Count  int `json:"count"`
	Target int `json:"target"`
}

type TimerProgress struct {
	Seconds int `json:"seconds"`
	Target  int `json:"target"`
}

type ChecklistProgress struct {
	Items     []string `json:"items"`
	Completed []string `json:"completed"`
}

func (SimpleProgress) Type() InteractionType    { return InteractionSimple }
func (CounterProgress) Type() InteractionType   { return InteractionCounter }
func (TimerProgress) Type() InteractionType     { return InteractionTimer }
func (ChecklistProgress) Type() InteractionType { return InteractionChecklist }

func (p SimpleProgress) Satisfied() bool    { return p.Completed }
func (p CounterProgress) Satisfied() bool   { return p.Count >= p.Target }
func (p TimerProgress) Satisfied() bool     { return p.Seconds >= p.Target }
func (p ChecklistProgress) Satisfied() bool { return len(p.Completed) >= len(p.Items) }

func (SimpleProgress) sealed()    {}
func (CounterProgress) sealed()   {}
func (TimerProgress) sealed()     {}
func (ChecklistProgress) sealed() {}

// DecodeProgress parses a stored payload for the given interaction type. An
// empty payload decodes to the zero value of that type.
func DecodeProgress(t InteractionType, raw []byte) (Progress, error) {
	empty := len(raw) == 0 || string(raw) == "null"
	switch t {
	case InteractionSimple:
		var p SimpleProgress
		if !empty {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("decode simple progress: %w", err)
			}
		}
		return p, nil
	case InteractionCounter:
		var p CounterProgress
		if !empty {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("decode counter progress: %w", err)
			}
		}
		return p, nil
	case InteractionTimer:
		var p TimerProgress
		if !empty {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("decode timer progress: %w", err)
			}
		}
		return p, nil
	case InteractionChecklist:
		var p ChecklistProgress
		if !empty {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("decode checklist progress: %w", err)
			}
		}
		if p.Items == nil {
			p.Items = []string{}
		}
		if p.Completed == nil {
			p.Completed = []string{}
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInteraction, t)
	}
}

func EncodeProgress(p Progress) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}
