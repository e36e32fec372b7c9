package check

// Outcome is the result of one verification request.
type Outcome struct {
	Verdict string
	Source  string
	Reason  string

	// Terminal marks a non-German verdict: ban and cooldown were not
	// evaluated and the remaining fields carry no meaning.
	Terminal bool

	Banned bool

	// CooldownRemaining is the seconds left in the cooldown window; 0
	// means this request consumed the cooldown. Only meaningful when the
	// outcome is neither Terminal nor Banned.
	CooldownRemaining int64

	// FirstCheck reports that this request created the player record.
	FirstCheck bool
}
