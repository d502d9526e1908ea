package interp

// HostEvent is one message the interpreter sends to the host over the
// outbound channel (spec.md §5 / SPEC_FULL.md §5's two-channel protocol).
type HostEvent interface{ hostEvent() }

// UpdateEvent signals the host to re-render the current page tree. It is
// sent exactly once per wait_for_event() call, immediately before the
// blocking receive, not on every individual mutator (spec.md §4.3,
// §8's "exactly one Update is sent before the blocking receive").
type UpdateEvent struct{ Root *Element }

// SetPageEvent reports a set_page() call: the host should replace its
// entire rendered tree with Root.
type SetPageEvent struct{ Root *Element }

// ScriptErrorEvent reports an unrecovered RuntimeError; the interpreter
// stops evaluating after sending this.
type ScriptErrorEvent struct{ Err error }

// LoadAddressErrorEvent reports that the address the host asked the
// interpreter to load could not be fetched or decoded.
type LoadAddressErrorEvent struct{ Err error }

// CloseTabEvent reports a CloseTab() call.
type CloseTabEvent struct{}

// OpenLinkEvent reports an OpenLink(url) call.
type OpenLinkEvent struct{ URL string }

func (UpdateEvent) hostEvent()           {}
func (SetPageEvent) hostEvent()          {}
func (ScriptErrorEvent) hostEvent()      {}
func (LoadAddressErrorEvent) hostEvent() {}
func (CloseTabEvent) hostEvent()         {}
func (OpenLinkEvent) hostEvent()         {}

// InputEvent is one message the host sends to the interpreter over the
// inbound channel: a UI interaction wait_for_event() is blocked on.
type InputEvent interface{ inputEvent() }

// ButtonPressEvent reports that the Button or Hyperlink with ElementID
// was activated.
type ButtonPressEvent struct{ ElementID int64 }

// InputConfirmedEvent reports that the Input with ElementID had its value
// confirmed (e.g. Enter pressed).
type InputConfirmedEvent struct{ ElementID int64 }

func (ButtonPressEvent) inputEvent()    {}
func (InputConfirmedEvent) inputEvent() {}
