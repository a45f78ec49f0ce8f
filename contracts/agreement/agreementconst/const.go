package agreementconst

// Status is an enumeration for agreement states.
type Status int

// Agreement states. Completed and Cancelled are terminal.
const (
	Active Status = iota
	Completed
	Cancelled
)

const (
	// MaxParticipants is the maximum number of identities an agreement may list.
	MaxParticipants = 10

	// MaxReferenceLen is the maximum byte length of the attached reference
	// (sized to fit a CIDv0 content hash).
	MaxReferenceLen = 46
)

const (
	// ErrTooManyParticipants is returned when the participant list exceeds
	// MaxParticipants.
	ErrTooManyParticipants = "too many participants"

	// ErrDuplicateParticipant is returned when the participant list contains
	// the same identity twice.
	ErrDuplicateParticipant = "duplicate participant"

	// ErrInvalidThreshold is returned when the approval threshold exceeds
	// the participant count.
	ErrInvalidThreshold = "invalid approval threshold"

	// ErrCreatorNotParticipant is returned when the creator is missing from
	// the participant list.
	ErrCreatorNotParticipant = "creator must be a participant"

	// ErrAlreadyExists is returned on attempt to reuse an agreement id by
	// the same creator.
	ErrAlreadyExists = "agreement already exists"

	// ErrNotFound is returned when the referenced agreement is missing.
	ErrNotFound = "agreement does not exist"

	// ErrNotActive is returned when an operation requires an Active agreement.
	ErrNotActive = "agreement is not active"

	// ErrNotCompleted is returned when an operation requires a Completed
	// agreement.
	ErrNotCompleted = "agreement is not completed"

	// ErrNotParticipant is returned when the identity is not listed on the
	// agreement.
	ErrNotParticipant = "not a participant"

	// ErrAlreadyApproved is returned when the identity has already approved
	// the agreement.
	ErrAlreadyApproved = "already approved"

	// ErrCancelled is returned on attempt to attach a reference to a
	// cancelled agreement.
	ErrCancelled = "agreement is cancelled"

	// ErrReferenceTooLong is returned when the attached reference exceeds
	// MaxReferenceLen.
	ErrReferenceTooLong = "reference too long"
)
