package domain

// Endpoint is one side of an extracted trip: a location name plus whatever
// address and memo the vocabulary already knows for it. Address stays empty
// for names the vocabulary has never seen — the commit step requires the
// caller to fill it in.
type Endpoint struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Memo    string `json:"memo,omitempty"`
	// Known is true when the name matched the vocabulary (as opposed to a
	// fallback word-split guess).
	Known bool `json:"known"`
}

// Candidate is an unconfirmed origin/destination pair extracted from one line
// of dispatch text. It becomes a ledger record only through
// SMSService.Commit, which enforces the mandatory-address rule.
type Candidate struct {
	Line        int      `json:"line"` // zero-based index into the parsed lines
	Text        string   `json:"text"` // the raw line the pair came from
	Origin      Endpoint `json:"origin"`
	Destination Endpoint `json:"destination"`
}
