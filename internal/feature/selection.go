package feature

// Selection is the collapsed/expanded state machine for the welcome screen's
// feature area. It is either collapsed (no feature selected, grid shown) or
// expanded on exactly one feature. IsExpanded() is true exactly when
// Selected() is non-nil.
type Selection struct {
	selected        Feature
	showVideoButton bool
}

// NewSelection returns a collapsed selection
func NewSelection() Selection {
	return Selection{}
}

// Select expands onto the given feature. Selecting while already expanded
// replaces the selection directly; there is no intermediate collapse.
// showVideoButton records whether the expanded detail view offers a video
// session for this feature (an agent-level rule decided by the caller).
func (s *Selection) Select(f Feature, showVideoButton bool) {
	if f == nil {
		return
	}
	s.selected = f
	s.showVideoButton = showVideoButton
}

// Back collapses the selection. Calling Back while already collapsed is a no-op.
func (s *Selection) Back() {
	s.selected = nil
	s.showVideoButton = false
}

// IsExpanded reports whether a feature detail view is showing
func (s *Selection) IsExpanded() bool {
	return s.selected != nil
}

// Selected returns the expanded feature, or nil when collapsed
func (s *Selection) Selected() Feature {
	return s.selected
}

// ShowVideoButton reports whether the expanded view offers a video session.
// Always false when collapsed.
func (s *Selection) ShowVideoButton() bool {
	return s.selected != nil && s.showVideoButton
}
