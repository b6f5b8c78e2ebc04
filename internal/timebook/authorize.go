package timebook

import (
	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
)

// AuthorizeMutation gates edit and delete. Paid entries are locked for every
// class, admins included. Non-admins may only touch their own entries.
func AuthorizeMutation(entry Entry, sess identity.SessionContext, acting string) error {
	if entry.Paid {
		return internal.ErrPaidLocked
	}
	if sess.IsAdmin() {
		return nil
	}
	if entry.Employee != identity.OwnerName(sess, acting) {
		return internal.ErrNotOwner
	}
	return nil
}
