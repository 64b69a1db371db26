package domain

import (
	"fmt"
	"strings"
)

// Metadata type tags written by the orchestration layer. They encode the
// semantic role of an otherwise generic wallet or transaction so that ROSCA
// views can be reconstructed later purely from the transaction log.
const (
	MetaTypeContribution = "rosca_contribution"
	MetaTypePayout       = "rosca_payout"
	MetaTypeGroup        = "rosca_group"
	MetaTypeMember       = "rosca_member"
)

// Metadata keys used by the ROSCA convention.
const (
	MetaKeyType       = "type"
	MetaKeyGroupID    = "groupId"
	MetaKeyRound      = "round"
	MetaKeyTimestamp  = "timestamp"
	MetaKeyMemberName = "memberName"

	// MetaKeyRoscaGroupID tags a group wallet with the host-app group it
	// belongs to.
	MetaKeyRoscaGroupID = "roscaGroupId"
)

// ContributionReference builds the deterministic idempotency/correlation
// key for a round contribution: rosca_{groupId}_r{round}.
func ContributionReference(groupID string, round int) string {
	return fmt.Sprintf("rosca_%s_r%d", groupID, round)
}

// PayoutReference builds the deterministic idempotency/correlation key for
// a round payout: rosca_payout_{groupId}_r{round}.
func PayoutReference(groupID string, round int) string {
	return fmt.Sprintf("rosca_payout_%s_r%d", groupID, round)
}

// BuildIdempotencyKey scopes a client-supplied idempotency key to one
// member's contribution in one round of one group, so the same header value
// reused for a different member, round, or group can never replay the wrong
// transaction.
func BuildIdempotencyKey(groupID string, round int, memberID, clientKey string) string {
	return fmt.Sprintf("%s:r%d:%s:%s", groupID, round, memberID, clientKey)
}

// BelongsToGroup reports whether the transaction was written for the given
// ROSCA group: either its metadata carries the group id, or its reference
// follows one of the group's reference shapes. The trailing "_r" keeps
// "grp-1" from matching "grp-10".
func (t *Transaction) BelongsToGroup(groupID string) bool {
	if MetaString(t.Metadata, MetaKeyGroupID) == groupID {
		return true
	}
	if t.Reference == "" {
		return false
	}
	return strings.Contains(t.Reference, "rosca_"+groupID+"_r") ||
		strings.Contains(t.Reference, "rosca_payout_"+groupID+"_r")
}

// IsContribution reports whether the transaction is tagged as a ROSCA
// contribution.
func (t *Transaction) IsContribution() bool {
	return MetaString(t.Metadata, MetaKeyType) == MetaTypeContribution
}

// IsPayout reports whether the transaction is tagged as a ROSCA payout.
func (t *Transaction) IsPayout() bool {
	return MetaString(t.Metadata, MetaKeyType) == MetaTypePayout
}

// MetaString reads a string value from a metadata bag. Returns "" when the
// key is absent or holds a non-string value.
func MetaString(md map[string]any, key string) string {
	if md == nil {
		return ""
	}
	if s, ok := md[key].(string); ok {
		return s
	}
	return ""
}

// MetaInt reads an integer value from a metadata bag. JSON round-trips
// numbers as float64, so both forms are accepted. Returns 0 when the key is
// absent or non-numeric.
func MetaInt(md map[string]any, key string) int {
	if md == nil {
		return 0
	}
	switch v := md[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
