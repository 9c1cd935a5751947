// Package parser implements the Paul-Williams DCS/CSI/ESC/OSC state
// machine that drives every other VTE subsystem. It consumes codepoints
// (already decoded by package utf8) and emits a sequence of typed Events
// carrying the action to perform and, where relevant, the triggering
// byte.
//
// State/action tables are transcribed from the global-preempt switch
// and per-state switch in parse_data(), and the do_trans/do_action
// dispatch helpers, all in
// _examples/original_source/src/tsm/tsm-vte.c (lines 1948-2452). The
// state is a plain State enum and each state has its own dispatch
// function (dispatchGround, dispatchEsc, ...), covering the full
// 14-state/15-action table.
package parser

// State is one of the 14 parser states defined by the VT500 parser.
type State int

const (
	Ground State = iota
	Esc
	EscIntermediate
	CsiEntry
	CsiParam
	CsiIntermediate
	CsiIgnore
	DcsEntry
	DcsParam
	DcsIntermediate
	DcsPass
	DcsIgnore
	OscString
	StIgnore
)

func (s State) String() string {
	switch s {
	case Ground:
		return "GROUND"
	case Esc:
		return "ESC"
	case EscIntermediate:
		return "ESC_INT"
	case CsiEntry:
		return "CSI_ENTRY"
	case CsiParam:
		return "CSI_PARAM"
	case CsiIntermediate:
		return "CSI_INT"
	case CsiIgnore:
		return "CSI_IGNORE"
	case DcsEntry:
		return "DCS_ENTRY"
	case DcsParam:
		return "DCS_PARAM"
	case DcsIntermediate:
		return "DCS_INT"
	case DcsPass:
		return "DCS_PASS"
	case DcsIgnore:
		return "DCS_IGNORE"
	case OscString:
		return "OSC_STRING"
	case StIgnore:
		return "ST_IGNORE"
	default:
		return "UNKNOWN"
	}
}

// Action is one of the 15 actions a transition may trigger.
type Action int

const (
	ActionNone Action = iota
	ActionIgnore
	ActionPrint
	ActionExecute
	ActionClear
	ActionCollect
	ActionParam
	ActionEscDispatch
	ActionCsiDispatch
	ActionDcsStart
	ActionDcsCollect
	ActionDcsEnd
	ActionOscStart
	ActionOscCollect
	ActionOscEnd
)

// Event is one action fired by the machine in response to a codepoint.
// Rune carries the triggering codepoint for PRINT/EXECUTE/COLLECT/PARAM/
// DCS_COLLECT/OSC_COLLECT/ESC_DISPATCH/CSI_DISPATCH actions; it is 0 for
// actions that need no payload (CLEAR, DCS_START, DCS_END, OSC_START,
// OSC_END).
type Event struct {
	Action Action
	Rune   rune
}

// Machine is a Paul-Williams VT500 parser. Its zero value starts in
// GROUND and is immediately usable.
type Machine struct {
	state State
	// events accumulates the ordered action events produced by the most
	// recent Feed call: at most an exit action, a transition action and
	// an entry action, matching do_trans's three-step sequence.
	events [3]Event
	n      int
}

// State returns the machine's current state.
func (m *Machine) State() State {
	return m.state
}

// Reset returns the machine to GROUND without firing any actions.
func (m *Machine) Reset() {
	m.state = Ground
	m.n = 0
}

func (m *Machine) emit(a Action, r rune) {
	if m.n < len(m.events) {
		m.events[m.n] = Event{Action: a, Rune: r}
		m.n++
	}
}

// Feed advances the machine by one codepoint and returns the ordered
// events it fired. The returned slice is only valid until the next call
// to Feed.
func (m *Machine) Feed(r rune) []Event {
	m.n = 0

	if preempt(r) {
		m.preempt(r)
		return m.events[:m.n]
	}

	next, action := m.dispatch(r)
	m.transition(next, action, r)
	return m.events[:m.n]
}

// preempt reports whether r is one of the global-preempt bytes that
// abort or redirect the current sequence regardless of state: CAN, SUB,
// most C1 codes, and ESC.
func preempt(r rune) bool {
	switch r {
	case 0x18, 0x1a, 0x1b:
		return true
	case 0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89, 0x8a, 0x8b, 0x8c, 0x8d, 0x8e, 0x8f:
		return true
	case 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x99, 0x9a, 0x9c:
		return true
	case 0x90, 0x98, 0x9b, 0x9d, 0x9e, 0x9f:
		return true
	default:
		return false
	}
}

// preempt fires one of the state-independent transitions. Grounded on
// parse_data's first switch statement, evaluated ahead of any
// per-state dispatch so CAN/SUB/ESC can abort a sequence in progress.
func (m *Machine) preempt(r rune) {
	switch r {
	case 0x18, 0x1a:
		m.transition(Ground, ActionExecute, r)
	case 0x1b:
		m.transition(Esc, ActionNone, r)
	case 0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89, 0x8a, 0x8b, 0x8c, 0x8d, 0x8e, 0x8f,
		0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x99, 0x9a, 0x9c:
		m.transition(Ground, ActionExecute, r)
	case 0x98, 0x9e, 0x9f:
		m.transition(StIgnore, ActionNone, r)
	case 0x90:
		m.transition(DcsEntry, ActionNone, r)
	case 0x9d:
		m.transition(OscString, ActionNone, r)
	case 0x9b:
		m.transition(CsiEntry, ActionNone, r)
	}
}

// dispatch returns the (next state, action) pair for r under the
// machine's current state, per the per-state switch in parse_data.
// sameState is used as a sentinel meaning "no transition, stay put".
const sameState State = -1

func (m *Machine) dispatch(r rune) (State, Action) {
	switch m.state {
	case Ground:
		return dispatchGround(r)
	case Esc:
		return dispatchEsc(r)
	case EscIntermediate:
		return dispatchEscIntermediate(r)
	case CsiEntry:
		return dispatchCsiEntry(r)
	case CsiParam:
		return dispatchCsiParam(r)
	case CsiIntermediate:
		return dispatchCsiIntermediate(r)
	case CsiIgnore:
		return dispatchCsiIgnore(r)
	case DcsEntry:
		return dispatchDcsEntry(r)
	case DcsParam:
		return dispatchDcsParam(r)
	case DcsIntermediate:
		return dispatchDcsIntermediate(r)
	case DcsPass:
		return dispatchDcsPass(r)
	case DcsIgnore:
		return dispatchDcsIgnore(r)
	case OscString:
		return dispatchOscString(r)
	case StIgnore:
		return dispatchStIgnore(r)
	default:
		return sameState, ActionNone
	}
}

func isC0Executable(r rune) bool {
	switch r {
	case 0x19:
		return true
	}
	return (r >= 0x00 && r <= 0x17) || (r >= 0x1c && r <= 0x1f)
}

func dispatchGround(r rune) (State, Action) {
	if isC0Executable(r) {
		return sameState, ActionExecute
	}
	return sameState, ActionPrint
}

func dispatchEsc(r rune) (State, Action) {
	switch {
	case isC0Executable(r):
		return sameState, ActionExecute
	case r == 0x7f:
		return sameState, ActionIgnore
	case r >= 0x20 && r <= 0x2f:
		return EscIntermediate, ActionCollect
	case r == 0x5b:
		return CsiEntry, ActionNone
	case r == 0x5d:
		return OscString, ActionNone
	case r == 0x50:
		return DcsEntry, ActionNone
	case r == 0x58 || r == 0x5e || r == 0x5f:
		return StIgnore, ActionNone
	case (r >= 0x30 && r <= 0x4f) || (r >= 0x51 && r <= 0x57) || r == 0x59 || r == 0x5a || r == 0x5c || (r >= 0x60 && r <= 0x7e):
		return Ground, ActionEscDispatch
	default:
		return EscIntermediate, ActionCollect
	}
}

func dispatchEscIntermediate(r rune) (State, Action) {
	switch {
	case isC0Executable(r):
		return sameState, ActionExecute
	case r >= 0x20 && r <= 0x2f:
		return sameState, ActionCollect
	case r == 0x7f:
		return sameState, ActionIgnore
	case r >= 0x30 && r <= 0x7e:
		return Ground, ActionEscDispatch
	default:
		return sameState, ActionCollect
	}
}

func dispatchCsiEntry(r rune) (State, Action) {
	switch {
	case isC0Executable(r):
		return sameState, ActionExecute
	case r == 0x7f:
		return sameState, ActionIgnore
	case r >= 0x20 && r <= 0x2f:
		return CsiIntermediate, ActionCollect
	case r == 0x3a:
		return CsiIgnore, ActionNone
	case (r >= '0' && r <= '9') || r == ';':
		return CsiParam, ActionParam
	case r >= 0x3c && r <= 0x3f:
		return CsiParam, ActionCollect
	case r >= 0x40 && r <= 0x7e:
		return Ground, ActionCsiDispatch
	default:
		return CsiIgnore, ActionNone
	}
}

func dispatchCsiParam(r rune) (State, Action) {
	switch {
	case isC0Executable(r):
		return sameState, ActionExecute
	case (r >= '0' && r <= '9') || r == ';':
		return sameState, ActionParam
	case r == 0x7f:
		return sameState, ActionIgnore
	case r == 0x3a || (r >= 0x3c && r <= 0x3f):
		return CsiIgnore, ActionNone
	case r >= 0x20 && r <= 0x2f:
		return CsiIntermediate, ActionCollect
	case r >= 0x40 && r <= 0x7e:
		return Ground, ActionCsiDispatch
	default:
		return CsiIgnore, ActionNone
	}
}

func dispatchCsiIntermediate(r rune) (State, Action) {
	switch {
	case isC0Executable(r):
		return sameState, ActionExecute
	case r >= 0x20 && r <= 0x2f:
		return sameState, ActionCollect
	case r == 0x7f:
		return sameState, ActionIgnore
	case r >= 0x30 && r <= 0x3f:
		return CsiIgnore, ActionNone
	case r >= 0x40 && r <= 0x7e:
		return Ground, ActionCsiDispatch
	default:
		return CsiIgnore, ActionNone
	}
}

func dispatchCsiIgnore(r rune) (State, Action) {
	switch {
	case isC0Executable(r):
		return sameState, ActionExecute
	case (r >= 0x20 && r <= 0x3f) || r == 0x7f:
		return sameState, ActionIgnore
	case r >= 0x40 && r <= 0x7e:
		return Ground, ActionNone
	default:
		return sameState, ActionIgnore
	}
}

func dispatchDcsEntry(r rune) (State, Action) {
	switch {
	case isC0Executable(r) || r == 0x7f:
		return sameState, ActionIgnore
	case r == 0x3a:
		return StIgnore, ActionNone
	case r >= 0x20 && r <= 0x2f:
		return DcsIntermediate, ActionCollect
	case (r >= '0' && r <= '9') || r == ';':
		return DcsParam, ActionParam
	case r >= 0x3c && r <= 0x3f:
		return DcsParam, ActionCollect
	case r >= 0x40 && r <= 0x7e:
		return DcsPass, ActionNone
	default:
		return DcsPass, ActionNone
	}
}

func dispatchDcsParam(r rune) (State, Action) {
	switch {
	case isC0Executable(r) || r == 0x7f:
		return sameState, ActionIgnore
	case (r >= '0' && r <= '9') || r == ';':
		return sameState, ActionParam
	case r == 0x3a || (r >= 0x3c && r <= 0x3f):
		return StIgnore, ActionNone
	case r >= 0x20 && r <= 0x2f:
		return DcsIntermediate, ActionCollect
	case r >= 0x40 && r <= 0x7e:
		return DcsPass, ActionNone
	default:
		return DcsPass, ActionNone
	}
}

func dispatchDcsIntermediate(r rune) (State, Action) {
	switch {
	case isC0Executable(r) || r == 0x7f:
		return sameState, ActionIgnore
	case r >= 0x20 && r <= 0x2f:
		return sameState, ActionCollect
	case r >= 0x30 && r <= 0x3f:
		return StIgnore, ActionNone
	case r >= 0x40 && r <= 0x7e:
		return DcsPass, ActionNone
	default:
		return DcsPass, ActionNone
	}
}

func dispatchDcsPass(r rune) (State, Action) {
	switch {
	case isC0Executable(r) || (r >= 0x20 && r <= 0x7e):
		return sameState, ActionDcsCollect
	case r == 0x7f:
		return sameState, ActionIgnore
	case r == 0x9c:
		return Ground, ActionNone
	default:
		return sameState, ActionDcsCollect
	}
}

func dispatchDcsIgnore(r rune) (State, Action) {
	switch {
	case (isC0Executable(r) || (r >= 0x20 && r <= 0x7e)) && r != 0x9c:
		return sameState, ActionIgnore
	case r == 0x9c:
		return Ground, ActionNone
	default:
		return sameState, ActionIgnore
	}
}

func dispatchOscString(r rune) (State, Action) {
	switch {
	case (r >= 0x00 && r <= 0x06) || (r >= 0x08 && r <= 0x17) || r == 0x19 || (r >= 0x1c && r <= 0x1f):
		return sameState, ActionIgnore
	case r == 0x07 || r == 0x9c:
		return Ground, ActionNone
	case r >= 0x20 && r <= 0x7f:
		return sameState, ActionOscCollect
	default:
		return sameState, ActionOscCollect
	}
}

func dispatchStIgnore(r rune) (State, Action) {
	switch {
	case r == 0x9c:
		return Ground, ActionNone
	default:
		return sameState, ActionIgnore
	}
}

// entryAction fires when next is newly entered, per entry_action[] in
// tsm-vte.c.
func entryAction(s State) Action {
	switch s {
	case CsiEntry, DcsEntry, Esc:
		return ActionClear
	case DcsPass:
		return ActionDcsStart
	case OscString:
		return ActionOscStart
	default:
		return ActionNone
	}
}

// exitAction fires when leaving cur, per exit_action[] in tsm-vte.c.
func exitAction(s State) Action {
	switch s {
	case DcsPass:
		return ActionDcsEnd
	case OscString:
		return ActionOscEnd
	default:
		return ActionNone
	}
}

// transition performs an exit action for the current state, the
// transition action itself, and an entry action for next, in that
// order, matching do_trans. next == sameState means "stay in the
// current state" and skips exit/entry actions entirely, mirroring
// do_trans's STATE_NONE special case.
func (m *Machine) transition(next State, action Action, r rune) {
	if next == sameState {
		if action != ActionNone {
			m.emit(action, r)
		}
		return
	}

	if exit := exitAction(m.state); exit != ActionNone {
		m.emit(exit, 0)
	}
	if action != ActionNone {
		m.emit(action, r)
	}
	if entry := entryAction(next); entry != ActionNone {
		m.emit(entry, 0)
	}
	m.state = next
}
