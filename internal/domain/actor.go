package domain

// Actor is the caller of a service operation: either an authenticated user
// or an anonymous guest. The zero value is anonymous.
type Actor struct {
	UserID int64
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor { return Actor{} }

// UserActor returns the actor for an authenticated user.
func UserActor(userID int64) Actor { return Actor{UserID: userID} }

// Authenticated reports whether the actor is a known user.
func (a Actor) Authenticated() bool { return a.UserID > 0 }

// Is reports whether the actor is the given user.
func (a Actor) Is(userID int64) bool { return a.Authenticated() && a.UserID == userID }
