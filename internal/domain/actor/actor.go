// Package actor describes who is performing a request. Every request carries
// exactly one Actor; business scope is read from it instead of session state.
package actor

// Actor is one of Staff, Tutor or Admin.
type Actor interface {
	isActor()
}

type Staff struct {
	UserID     uint
	BusinessID uint
	Manager    bool
}

type Tutor struct {
	UserID     uint
	TutorID    uint
	BusinessID uint
}

type Admin struct {
	UserID uint
}

func (Staff) isActor() {}
func (Tutor) isActor() {}
func (Admin) isActor() {}

// BusinessOf returns the business the actor is scoped to. Admins are not
// scoped and get ok == false.
func BusinessOf(a Actor) (uint, bool) {
	switch v := a.(type) {
	case Staff:
		return v.BusinessID, true
	case Tutor:
		return v.BusinessID, true
	default:
		return 0, false
	}
}

// UserIDOf returns the authenticated user behind the actor.
func UserIDOf(a Actor) uint {
	switch v := a.(type) {
	case Staff:
		return v.UserID
	case Tutor:
		return v.UserID
	case Admin:
		return v.UserID
	default:
		return 0
	}
}

// CanManageBusiness is true for staff of that business and for admins.
func CanManageBusiness(a Actor, businessID uint) bool {
	switch v := a.(type) {
	case Staff:
		return v.BusinessID == businessID
	case Admin:
		return true
	default:
		return false
	}
}

// CanSeeBusiness is true for anyone scoped to the business, and admins.
func CanSeeBusiness(a Actor, businessID uint) bool {
	switch v := a.(type) {
	case Staff:
		return v.BusinessID == businessID
	case Tutor:
		return v.BusinessID == businessID
	case Admin:
		return true
	default:
		return false
	}
}

func Kind(a Actor) string {
	switch a.(type) {
	case Staff:
		return "staff"
	case Tutor:
		return "tutor"
	case Admin:
		return "admin"
	default:
		return "anonymous"
	}
}

// ResolveBusiness picks the business a request works on. Scoped actors
// always get their own business; admins must name one.
func ResolveBusiness(a Actor, requested uint) (uint, bool) {
	if id, ok := BusinessOf(a); ok {
		return id, true
	}
	if _, ok := a.(Admin); ok && requested != 0 {
		return requested, true
	}
	return 0, false
}
