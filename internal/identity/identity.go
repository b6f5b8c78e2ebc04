package identity

import (
	"context"
)

// BootstrapUsername is the primary admin account. It cannot be renamed or
// deleted and always keeps full page access.
const BootstrapUsername = "admin"

type RoleClass string

const (
	ClassAdmin RoleClass = "admin"
	ClassUser  RoleClass = "user"
	ClassNP    RoleClass = "NP"
)

// SessionContext is the identity attached to one active login.
type SessionContext struct {
	SessionID    string    `json:"session_id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	RoleClass    RoleClass `json:"role_class"`
	EmployeeName string    `json:"employee_name,omitempty"`
}

func (s SessionContext) IsAdmin() bool {
	return s.RoleClass == ClassAdmin
}

// ClassFor maps a stored user onto a session class. Non-admin accounts with
// no employee link that were created as non-personnel become NP.
func ClassFor(storedClass string, employeeName *string, nonPersonnel bool) RoleClass {
	if storedClass == string(ClassAdmin) {
		return ClassAdmin
	}
	if nonPersonnel && (employeeName == nil || *employeeName == "") {
		return ClassNP
	}
	return ClassUser
}

// ResolveActingEmployee picks the employee a session acts as for timebook
// scoping. The order of the checks is load-bearing; every timebook operation
// goes through here.
func ResolveActingEmployee(sess SessionContext, employees []string) (string, bool) {
	if sess.EmployeeName != "" {
		return sess.EmployeeName, true
	}

	if sess.RoleClass == ClassUser || sess.RoleClass == ClassNP {
		for _, name := range employees {
			if name == sess.Username {
				return name, true
			}
		}
	}

	if sess.RoleClass == ClassNP {
		if sess.EmployeeName != "" {
			return sess.EmployeeName, true
		}
		if len(employees) > 0 {
			return employees[0], true
		}
		return "", false
	}

	return "", false
}

// OwnerName is who a non-admin session may mutate entries for: the acting
// employee, falling back to the username.
func OwnerName(sess SessionContext, acting string) string {
	if acting != "" {
		return acting
	}
	return sess.Username
}

type ctxKey string

const sessionKey ctxKey = "session"

func WithSession(ctx context.Context, sess SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func FromContext(ctx context.Context) (SessionContext, bool) {
	if ctx == nil {
		return SessionContext{}, false
	}
	sess, ok := ctx.Value(sessionKey).(SessionContext)
	return sess, ok
}
