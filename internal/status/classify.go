package status

// Category is the display class derived from a (status, result) pair.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryInProgress
	CategorySuccess
	CategoryFailure
	CategoryUnstable
	CategoryAborted
	CategorySkipped
)

// Color is a palette token consumed by renderers.
type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	Red    Color = "red"
	Orange Color = "orange"
	Grey   Color = "grey"
)

// Icon is a symbolic icon token consumed by renderers.
type Icon string

const (
	IconRunning  Icon = "cached-spinner"
	IconSuccess  Icon = "check-circle"
	IconFailure  Icon = "x-circle"
	IconUnstable Icon = "alert-circle"
	IconAborted  Icon = "minus-circle"
	IconSkipped  Icon = "cancel"
	IconUnknown  Icon = "help-circle"
)

// Classify returns the category for a node. A running status wins over any
// result; otherwise the result decides.
func Classify(state, result Status) Category {
	if state == Running {
		return CategoryInProgress
	}
	switch result {
	case Success, Passed:
		return CategorySuccess
	case Failure, Failed:
		return CategoryFailure
	case Unstable:
		return CategoryUnstable
	case Aborted:
		return CategoryAborted
	case Skipped:
		return CategorySkipped
	default:
		return CategoryUnknown
	}
}

// Color returns the palette token for c. Aborted and skipped share grey.
func (c Category) Color() Color {
	switch c {
	case CategoryInProgress:
		return Blue
	case CategorySuccess:
		return Green
	case CategoryFailure:
		return Red
	case CategoryUnstable:
		return Orange
	default:
		return Grey
	}
}

// Icon returns the icon token for c.
func (c Category) Icon() Icon {
	switch c {
	case CategoryInProgress:
		return IconRunning
	case CategorySuccess:
		return IconSuccess
	case CategoryFailure:
		return IconFailure
	case CategoryUnstable:
		return IconUnstable
	case CategoryAborted:
		return IconAborted
	case CategorySkipped:
		return IconSkipped
	default:
		return IconUnknown
	}
}

// Label returns the human readable text for c. There is no skipped label;
// skipped nodes read "Unknown".
func (c Category) Label() string {
	switch c {
	case CategoryInProgress:
		return "Running"
	case CategorySuccess:
		return "Passed"
	case CategoryFailure:
		return "Failed"
	case CategoryUnstable:
		return "Unstable"
	case CategoryAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// String returns a short lowercase name, used in logs and CLI output.
func (c Category) String() string {
	switch c {
	case CategoryInProgress:
		return "in-progress"
	case CategorySuccess:
		return "success"
	case CategoryFailure:
		return "failure"
	case CategoryUnstable:
		return "unstable"
	case CategoryAborted:
		return "aborted"
	case CategorySkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ColorOf returns the palette token for a node.
func ColorOf(state, result Status) Color {
	return Classify(state, result).Color()
}

// IconOf returns the glyph name for a node.
func IconOf(state, result Status) Icon {
	return Classify(state, result).Icon()
}

// LabelOf returns the display label for a node.
func LabelOf(state, result Status) string {
	return Classify(state, result).Label()
}

// OfTest classifies a test case, which only carries a single status field.
func OfTest(s Status) Category {
	return Classify(Unknown, s)
}
