package rules

// Outcome is the result of one expectation.
type Outcome struct {
	Expression string
	Passed     bool
}
