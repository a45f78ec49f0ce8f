package reputationconst

// Kind is an enumeration for kinds of activity recorded against an
// identity's reputation counters.
type Kind int

// Various activity kinds.
const (
	// Touch refreshes the last activity timestamp without changing any counter.
	Touch Kind = iota

	// Created counts a new agreement registered by the identity.
	Created

	// Completed counts an agreement completion attributed to the identity.
	Completed

	// Approved counts an agreement approval given by the identity.
	Approved

	// Escrowed accumulates value the identity has placed into escrow.
	Escrowed
)

const (
	// ErrAlreadyExists is returned on attempt to initialize a reputation
	// record for an identity that already has one.
	ErrAlreadyExists = "reputation record already exists"

	// ErrNotInitialized is returned when activity is recorded against an
	// identity without a reputation record.
	ErrNotInitialized = "reputation record not initialized"

	// ErrUnknownKind is returned when an unsupported activity kind is passed.
	ErrUnknownKind = "unknown activity kind"

	// ErrNegativeAmount is returned when a negative escrow amount is passed.
	ErrNegativeAmount = "negative escrow amount"
)
