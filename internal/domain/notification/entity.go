package notification

import "time"

// Type represents the kind of notification sent to a recipient.
type Type string

const (
	TypeClaimApproved        Type = "claim_approved"
	TypeClaimRejected        Type = "claim_rejected"
	TypeClaimConfirmed       Type = "claim_confirmed"
	TypeDisputeApproved      Type = "dispute_approved"
	TypeDisputeRejected      Type = "dispute_rejected"
	TypeDisputeConfirmed     Type = "dispute_confirmed"
	TypeRefundProcessed      Type = "refund_processed"
	TypeExceptionsEscalated  Type = "exceptions_escalated"
	TypeCutoffReminder       Type = "cutoff_reminder"
)

// Notification is a stored fire-and-forget message to a recipient.
type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Message     string
	CreatedAt   time.Time
}
