/*
Package reputation implements the Reputation contract of the agreement
contracts suite.

The contract keeps one activity record per identity. A record is created
explicitly by its owner and from then on is updated as a side effect of
every agreement and escrow operation the identity performs: registering
an agreement, approving one, being marked as a completing participant,
or placing value into escrow. Records are bookkeeping only: no other
contract of the suite gates its behavior on reputation values.

Counter updates are reserved for the Agreement and Escrow contracts;
direct invocations of recordActivity are rejected.

# Contract notifications

Reputation contract does not produce notifications to process.
*/
package reputation

/*
Contract storage model.

Current conventions:
 <identity>: 20-byte script hash of the identity's account

# Summary
Key-value storage format:
 - 'r<identity>' -> std.Serialize(Record)
   activity counters and first/last activity timestamps of the identity
 - 'a' -> interop.Hash160
   address of the Agreement contract authorized to record activity
 - 'e' -> interop.Hash160
   address of the Escrow contract authorized to record activity

# Reputation
Contract stores activity counters for the lifetime of each identity.
Counters never decrease and records are never removed.
*/
