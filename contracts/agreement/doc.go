/*
Package agreement implements the Agreement contract of the agreement
contracts suite.

The contract is a registry of multi-party agreements. An agreement lists
up to ten participants, one of whom is the creator, and carries an
approval threshold chosen at creation. Participants approve the
agreement one by one; the vote that reaches the threshold completes the
agreement in the same transaction. The creator may cancel an agreement
that has not completed yet. Both outcomes are terminal: a completed or
cancelled agreement never changes state again, although records are kept
forever as a permanent trace.

Any participant may attach an opaque reference (a content hash of the
agreement text, for example) to an agreement that has not been
cancelled. Agreement operations report the acting identity to the
Reputation contract as a side effect.

# Contract notifications

AgreementCreated notification. Emitted when a new agreement is registered:

	AgreementCreated
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160

AgreementApproved notification. Emitted on every accepted approval:

	AgreementApproved
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160
	  - name: approver
	    type: Hash160

AgreementCompleted notification. Emitted by the approval that reaches the
threshold:

	AgreementCompleted
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160

AgreementCancelled notification. Emitted when the creator cancels an
active agreement:

	AgreementCancelled
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160

ReferenceAttached notification. Emitted when a participant overwrites the
attached reference:

	ReferenceAttached
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160
	  - name: reference
	    type: String
*/
package agreement

/*
Contract storage model.

Current conventions:
 <creator>: 20-byte script hash of the creator's account
 <id>: 8-byte little-endian unsigned agreement identifier

# Summary
Key-value storage format:
 - 'a<creator><id>' -> std.Serialize(Agreement)
   agreement record, addressed by its natural identifying pair
 - 'r' -> interop.Hash160
   address of the Reputation contract

# Agreements
Agreements are never deleted. The composite key makes ids unique per
creator only; a prefix scan over 'a<creator>' lists one creator's
agreements without any secondary index.
*/
