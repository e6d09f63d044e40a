package domain

// EscrowKey addresses one held balance in the escrow ledger.
type EscrowKey struct {
	User  string
	Token string
}

// EscrowEntry is a held balance recorded against a user. Entries are created
// lazily on first reservation and only ever grow; releasing escrow is the
// custody collaborator's job and has no path through this engine.
type EscrowEntry struct {
	User    string
	Token   string
	Balance uint64
}
