package chart

import (
	"fmt"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

type Phase int

const (
	Idle     Phase = iota // no pointer over the plot
	Hovering              // pointer resolved to a record
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Interaction is the hover state of one chart instance.
type Interaction struct {
	Phase Phase
	Index int // valid only while Hovering
}

// IdleState is the initial interaction.
var IdleState = Interaction{Phase: Idle, Index: -1}

func (s Interaction) Hovering() bool { return s.Phase == Hovering }

type EventKind int

const (
	PointerMove EventKind = iota
	PointerLeave
)

type Event struct {
	Kind EventKind
	X    float64 // pixel x, PointerMove only
}

// Resolution is the resolver's answer for a pointer event.
type Resolution struct {
	Index int
	OK    bool
}

// Transition is the pure hover state machine:
//
//	Idle/Hovering --move(match)-->   Hovering(index)
//	Idle/Hovering --move(no match)--> Idle
//	Idle/Hovering --leave-->          Idle
func Transition(cur Interaction, ev Event, res Resolution) Interaction {
	switch ev.Kind {
	case PointerMove:
		if res.OK && res.Index >= 0 {
			return Interaction{Phase: Hovering, Index: res.Index}
		}
		return IdleState
	case PointerLeave:
		return IdleState
	default:
		return cur
	}
}

// Tooltip is the transient overlay derived from an Interaction.
type Tooltip struct {
	Visible bool
	Index   int
	Record  series.EnrichedRecord
	X, Y    float64 // anchor: band centre, top of the bar
}

// Payload returns the outward tooltip contract.
func (t Tooltip) Payload() series.TooltipPayload {
	return series.TooltipPayload{Date: t.Record.Date, NewConfirmed: t.Record.NewConfirmed}
}

// TooltipFor derives the tooltip of st. A stale index (outside the series)
// yields an invisible tooltip.
func TooltipFor(st Interaction, sc Scales, s *series.Series) Tooltip {
	if !st.Hovering() || st.Index < 0 || st.Index >= s.Len() || st.Index >= sc.Band.Len() {
		return Tooltip{Index: -1}
	}
	rec := s.At(st.Index)
	return Tooltip{
		Visible: true,
		Index:   st.Index,
		Record:  rec,
		X:       sc.Band.Center(st.Index),
		Y:       sc.Value.Scale(float64(rec.NewConfirmed)),
	}
}
