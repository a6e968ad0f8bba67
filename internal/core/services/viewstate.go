package services

// ViewMode selects between composing a new entry and browsing the
// loaded collection.
type ViewMode int

const (
	// ModeCompose is the add-new-entry panel.
	ModeCompose ViewMode = iota

	// ModeBrowse is the list/detail panel.
	ModeBrowse
)

// ViewState tracks per-screen selection and expansion state: the
// active topic, the active item, which detail panels are open, and
// the compose/browse mode. Pure state transitions, no I/O. It is
// driven from the single UI loop and needs no locking.
type ViewState struct {
	topic  string
	itemID string
	open   map[string]bool
	mode   ViewMode
}

// NewViewState creates an empty view state in compose mode.
func NewViewState() *ViewState {
	return &ViewState{open: make(map[string]bool)}
}

// SelectTopic activates a topic. Item selection and open panels are
// reset so no stale cross-topic references survive.
func (v *ViewState) SelectTopic(name string) {
	v.topic = name
	v.itemID = ""
	v.open = make(map[string]bool)
	v.mode = ModeCompose
}

// SelectedTopic returns the active topic name, or empty.
func (v *ViewState) SelectedTopic() string { return v.topic }

// SelectItem activates an item for detail view.
func (v *ViewState) SelectItem(id string) { v.itemID = id }

// SelectedItem returns the active item id, or empty.
func (v *ViewState) SelectedItem() string { return v.itemID }

// Toggle flips a panel: present in the open set means open.
func (v *ViewState) Toggle(id string) {
	if v.open[id] {
		delete(v.open, id)
		return
	}
	v.open[id] = true
}

// IsOpen reports whether the panel for id is expanded.
func (v *ViewState) IsOpen(id string) bool { return v.open[id] }

// OpenCount returns the number of expanded panels.
func (v *ViewState) OpenCount() int { return len(v.open) }

// SetMode switches between compose and browse.
func (v *ViewState) SetMode(m ViewMode) { v.mode = m }

// Mode returns the active view mode.
func (v *ViewState) Mode() ViewMode { return v.mode }

// Reset clears all selection state.
func (v *ViewState) Reset() {
	v.topic = ""
	v.itemID = ""
	v.open = make(map[string]bool)
	v.mode = ModeCompose
}
