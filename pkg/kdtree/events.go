package kdtree

import "sort"

// eventKind is a SplitEvent's secondary sort key. The ordering End < Planar
// < Start is load-bearing: at an identical coordinate, primitives ending
// there must be counted out of rightCount before planar-only primitives
// are folded in, which in turn must happen before primitives starting
// there are counted into leftCount (spec.md section 4.1, step 4).
type eventKind int

const (
	eventEnd eventKind = iota
	eventPlanar
	eventStart
)

// event is a single SplitEvent: a candidate plane generated by one
// primitive's clipped box against the current node's box.
type event struct {
	primitiveIndex int
	position       float32
	kind           eventKind
}

// sortEvents orders events by the spec's total order: primary key
// position, secondary key kind in the sequence End < Planar < Start.
func sortEvents(events []event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].position != events[j].position {
			return events[i].position < events[j].position
		}
		return events[i].kind < events[j].kind
	})
}

// eventsForDimension generates the Start/End/Planar events for dimension
// d from each primitive's box clipped against the node's box.
func eventsForDimension(clipped []clippedBox, d int) []event {
	events := make([]event, 0, len(clipped)*2)
	for i, c := range clipped {
		if c.box.IsEmpty() {
			continue
		}
		lo := c.box.Min.Component(d)
		hi := c.box.Max.Component(d)
		if c.box.Planar(d) {
			events = append(events, event{primitiveIndex: i, position: lo, kind: eventPlanar})
		} else {
			events = append(events, event{primitiveIndex: i, position: lo, kind: eventStart})
			events = append(events, event{primitiveIndex: i, position: hi, kind: eventEnd})
		}
	}
	sortEvents(events)
	return events
}
