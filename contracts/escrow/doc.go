/*
Package escrow implements the Escrow contract of the agreement contracts
suite.

The contract holds GAS in custody per agreement milestone. A milestone is
created and funded by the agreement creator in one transaction: the value
transfer into the contract account and the record creation either both
happen or neither does. From there any agreement participant may mark the
milestone complete, after which participants approve the release one by
one. Once every participant of the agreement (counted at funding time)
has approved, anyone may trigger the release that pays the recipient.
The creator may cancel a milestone that has not been marked complete,
reclaiming the funded amount. Released and cancelled milestones are
final.

The milestone deadline is advisory data carried in the record; no
operation enforces it.

# Contract notifications

MilestoneFunded notification. Emitted when a milestone is created and its
amount is taken into custody:

	MilestoneFunded
	  - name: agreementId
	    type: Integer
	  - name: id
	    type: Integer
	  - name: amount
	    type: Integer
	  - name: recipient
	    type: Hash160

MilestoneMarkedComplete notification. Emitted when a participant asserts
the milestone work is done:

	MilestoneMarkedComplete
	  - name: agreementId
	    type: Integer
	  - name: id
	    type: Integer
	  - name: marker
	    type: Hash160

MilestoneReleaseApproved notification. Emitted on every accepted release
approval:

	MilestoneReleaseApproved
	  - name: agreementId
	    type: Integer
	  - name: id
	    type: Integer
	  - name: approver
	    type: Hash160

MilestoneReleased notification. Emitted when custody is paid out to the
recipient:

	MilestoneReleased
	  - name: agreementId
	    type: Integer
	  - name: id
	    type: Integer
	  - name: recipient
	    type: Hash160
	  - name: amount
	    type: Integer

MilestoneCancelled notification. Emitted when the creator cancels the
milestone:

	MilestoneCancelled
	  - name: agreementId
	    type: Integer
	  - name: id
	    type: Integer
*/
package escrow

/*
Contract storage model.

Current conventions:
 <agreementID>: 8-byte little-endian unsigned agreement identifier
 <id>: 8-byte little-endian unsigned milestone identifier

# Summary
Key-value storage format:
 - 'm<agreementID><id>' -> std.Serialize(Milestone)
   milestone record, addressed by its natural identifying pair
 - 'a' -> interop.Hash160
   address of the Agreement contract
 - 'r' -> interop.Hash160
   address of the Reputation contract

# Custody
The contract account is the custody account: the sum of amounts of all
milestones in the Funded and MarkedComplete states equals the GAS the
contract holds on their behalf. A prefix scan over 'm<agreementID>'
lists the milestones of one agreement without any secondary index.
*/
