package models

// Candidate represents one address to be compared against the reference address.
type Candidate struct {
	Address  string // Address is the free-text postal address, passed to the provider verbatim.
	Position int    // Position is the zero-based index of the address in the input list.
}
