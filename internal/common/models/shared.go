package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
)

// Role is an operator role carried in the JWT claims
type Role string

const (
	RoleStore Role = "store"
	RoleAdmin Role = "admin"
	RoleGM    Role = "gm"
)

// AllRoles lists every role a console user can hold
var AllRoles = []Role{RoleStore, RoleAdmin, RoleGM}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleStore, RoleAdmin, RoleGM:
		return true
	}
	return false
}

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionApproval AuditAction = "APPROVAL"
	AuditActionClose    AuditAction = "CLOSE"
	AuditActionSync     AuditAction = "SYNC"
	AuditActionReport   AuditAction = "REPORT"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`       // The collection the record lives in
	RecordID  string             `bson:"record_id" json:"record_id"` // grn_no for approval records
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	ActorRole string             `bson:"actor_role,omitempty" json:"actor_role,omitempty"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"` // field -> {old, new}
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

type Log struct {
	AppId        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	GRNNo        string    `bson:"grn_no,omitempty" json:"grn_no,omitempty"`
	RequestID    string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
