package swiper

// state is one phase of the poll-act cycle.
type state int

const (
	stateAwaitLoading state = iota
	stateCheckExhausted
	stateLike
	stateComment
	stateSend
	stateFinished
)

func (s state) String() string {
	switch s {
	case stateAwaitLoading:
		return "awaiting_loading_clear"
	case stateCheckExhausted:
		return "checking_terminal_marker"
	case stateLike:
		return "like"
	case stateComment:
		return "comment"
	case stateSend:
		return "send"
	case stateFinished:
		return "finished"
	}
	return "unknown"
}
