// Package flash keeps a one-shot notice inbox in the user's session. The
// inbox holds at most one notice; writing replaces it and reading clears it.
package flash

import (
	"github.com/gin-contrib/sessions"
)

const (
	kindKey    = "flash_kind"
	messageKey = "flash_message"
)

// Kind classifies a notice for display
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notice is a pending one-time message
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Put replaces the pending notice. The caller is responsible for saving the session.
func Put(s sessions.Session, kind Kind, message string) {
	s.Set(kindKey, string(kind))
	s.Set(messageKey, message)
}

// Pop returns and clears the pending notice, or nil if the inbox is empty.
// The caller is responsible for saving the session.
func Pop(s sessions.Session) *Notice {
	msg, _ := s.Get(messageKey).(string)
	kind, _ := s.Get(kindKey).(string)
	if msg == "" {
		return nil
	}
	s.Delete(kindKey)
	s.Delete(messageKey)
	if kind == "" {
		kind = string(KindInfo)
	}
	return &Notice{Kind: Kind(kind), Message: msg}
}

// Success is shorthand for Put with KindSuccess
func Success(s sessions.Session, message string) {
	Put(s, KindSuccess, message)
}

// Error is shorthand for Put with KindError
func Error(s sessions.Session, message string) {
	Put(s, KindError, message)
}
