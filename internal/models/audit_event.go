package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditAction identifies the lifecycle step an audit event records
type AuditAction string

const (
	AuditActionScheduled       AuditAction = "DRAW_SCHEDULED"
	AuditActionExecuteStarted  AuditAction = "EXECUTE_STARTED"
	AuditActionExecuteFailed   AuditAction = "EXECUTE_FAILED"
	AuditActionCompleted       AuditAction = "DRAW_COMPLETED"
	AuditActionWinnerStatusSet AuditAction = "WINNER_STATUS_UPDATED"
)

// AuditEvent records a single draw-lifecycle transition for the audit trail
type AuditEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DrawID     string             `bson:"drawId,omitempty" json:"drawId,omitempty"`
	DrawDate   string             `bson:"drawDate" json:"drawDate"`
	Action     AuditAction        `bson:"action" json:"action"`
	FromStatus DrawStatus         `bson:"fromStatus,omitempty" json:"fromStatus,omitempty"`
	ToStatus   DrawStatus         `bson:"toStatus,omitempty" json:"toStatus,omitempty"`
	Actor      string             `bson:"actor,omitempty" json:"actor,omitempty"`
	Detail     string             `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
