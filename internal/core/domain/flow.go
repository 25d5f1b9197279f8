package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Flow identifies which connector interaction a pipeline run performs.
type Flow string

const (
	FlowAuthorize Flow = "authorize"
	FlowVoid      Flow = "void"
	FlowCapture   Flow = "capture"
	FlowPSync     Flow = "psync"
)

// ErrNotFound is wrapped by repositories when a keyed record is absent.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is wrapped by repositories when an insert hits an existing key.
var ErrDuplicate = errors.New("record already exists")

// NewID returns prefix_<32 hex>.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewPaymentID generates a merchant-facing payment id.
func NewPaymentID() string {
	return NewID("pay")
}
