package repository

import "fmt"

// Key addresses one cart record in the store. The two namespaces
// (authenticated user, anonymous session) are kept apart by the kind
// tag instead of by string concatenation at call sites, so a session
// id can never collide with a user id.
type Key struct {
	kind keyKind
	id   string
}

type keyKind int

const (
	kindUser keyKind = iota
	kindSession
)

func UserKey(userID string) Key {
	return Key{kind: kindUser, id: userID}
}

func SessionKey(sessionID string) Key {
	return Key{kind: kindSession, id: sessionID}
}

func (k Key) IsSession() bool {
	return k.kind == kindSession
}

func (k Key) String() string {
	if k.kind == kindSession {
		return fmt.Sprintf("cart:session:%s", k.id)
	}
	return fmt.Sprintf("cart:%s", k.id)
}
