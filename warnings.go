package fstr

// Issue is the category of a non-fatal parse problem.
type Issue int

const (
	// IssueUnpairedMarkdown means a markdown delimiter that could open a
	// span has no matching closing delimiter. It is kept as plain text.
	IssueUnpairedMarkdown Issue = iota
)

func (i Issue) String() string {
	switch i {
	case IssueUnpairedMarkdown:
		return "unpaired_markdown"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal problem found while parsing. Parsing still
// produced a complete sequence.
type Warning struct {
	Issue Issue `json:"issue"`

	// Pos is the byte offset in the input where the problem was detected.
	Pos int `json:"pos"`

	// Near is the input snippet that caused the problem.
	Near string `json:"near"`

	Description string `json:"description"`
}
