package form

const (
	// EventFormSubmitted is emitted once per successful Submit.
	EventFormSubmitted = "formSubmitted"
	// EventFormReset is emitted whenever values are restored to their initial
	// state, including the reset that follows a submit when configured.
	EventFormReset = "formReset"
)

// Submission is the payload packaged on submit: current values keyed by field
// label. Checkbox groups contribute a []string, every other field a string.
type Submission struct {
	ID       string         `json:"id"`
	FormName string         `json:"formName"`
	Values   map[string]any `json:"values"`
}

// Event is delivered to listeners registered with OnEvent. Submission is only
// set for EventFormSubmitted.
type Event struct {
	Name       string
	FormName   string
	Submission *Submission
}

// Listener receives form events synchronously, in registration order.
type Listener func(Event)
