package escrowconst

// Status is an enumeration for milestone states.
type Status int

// Milestone states. Released and Cancelled are terminal.
const (
	Pending Status = iota
	Funded
	MarkedComplete
	Released
	Cancelled
)

// MaxDescriptionLen is the maximum byte length of a milestone description.
const MaxDescriptionLen = 200

const (
	// ErrDescriptionTooLong is returned when the description exceeds
	// MaxDescriptionLen.
	ErrDescriptionTooLong = "description too long"

	// ErrOnlyCreatorCanFund is returned when someone other than the
	// agreement creator tries to fund a milestone.
	ErrOnlyCreatorCanFund = "only agreement creator can fund a milestone"

	// ErrRecipientNotParticipant is returned when the milestone recipient is
	// not listed on the agreement.
	ErrRecipientNotParticipant = "recipient is not a participant"

	// ErrInvalidAmount is returned when the escrow amount is not positive.
	ErrInvalidAmount = "invalid amount"

	// ErrAlreadyExists is returned on attempt to reuse a milestone id within
	// the same agreement.
	ErrAlreadyExists = "milestone already exists"

	// ErrNotFound is returned when the referenced milestone is missing.
	ErrNotFound = "milestone does not exist"

	// ErrNotFunded is returned when an operation requires a Funded milestone.
	ErrNotFunded = "milestone is not funded"

	// ErrNotMarkedComplete is returned when an operation requires a
	// MarkedComplete milestone.
	ErrNotMarkedComplete = "milestone is not marked complete"

	// ErrAlreadyApproved is returned when the identity has already approved
	// the milestone release.
	ErrAlreadyApproved = "milestone already approved"

	// ErrInsufficientApprovals is returned on release attempt before every
	// required approval is collected.
	ErrInsufficientApprovals = "insufficient approvals to release funds"

	// ErrOnlyCreatorCanCancel is returned when someone other than the
	// milestone creator tries to cancel it.
	ErrOnlyCreatorCanCancel = "only creator can cancel the milestone"

	// ErrCannotCancel is returned on attempt to cancel a milestone that is
	// neither Pending nor Funded.
	ErrCannotCancel = "cannot cancel milestone in current state"

	// ErrTransferFailed is returned when the GAS transfer backing an escrow
	// operation fails.
	ErrTransferFailed = "failed to transfer funds"
)
