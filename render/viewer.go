package render

import "github.com/Drolfothesgnir/bbpost/bbcode"

// Role is the forum role of the reader.
type Role string

const (
	RoleGuest     Role = ""
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleStaff     Role = "staff"
)

// ParseRole maps the role name to the Role. Unknown names are treated as a plain user.
func ParseRole(name string) Role {
	switch Role(name) {
	case RoleGuest, RoleModerator, RoleStaff:
		return Role(name)
	}
	return RoleUser
}

// Viewer is the reader of the post. The zero Viewer is an anonymous guest.
type Viewer struct {
	UserID int64
	Role   Role
}

func (v Viewer) IsAuthenticated() bool {
	return v.UserID > 0
}

// CanSee reports whether the Viewer is allowed to see the body of the restricted block
// of the post written by the author.
//
//   - [hide] requires any authenticated reader;
//   - [cur] is for the author of the post and the staff;
//   - [mod] is for the moderators and the staff;
//   - [ex] is for the staff only.
//
// The Kinds which are not restricted are always visible.
func (v Viewer) CanSee(kind bbcode.Kind, authorID int64) bool {
	staff := v.IsAuthenticated() && v.Role == RoleStaff

	switch kind {
	case bbcode.KindHide:
		return v.IsAuthenticated()
	case bbcode.KindCurrentUser:
		return staff || (v.IsAuthenticated() && v.UserID == authorID)
	case bbcode.KindModerator:
		return staff || (v.IsAuthenticated() && v.Role == RoleModerator)
	case bbcode.KindStaff:
		return staff
	}

	return true
}

// Redact returns a copy of the nodes where the restricted blocks the Viewer cannot see
// have lost their children. The blocks themselves are kept, so the readers know
// something is hidden there.
func Redact[T bbcode.Text[T]](nodes []bbcode.Node[T], v Viewer, authorID int64) []bbcode.Node[T] {
	if nodes == nil {
		return nil
	}

	out := make([]bbcode.Node[T], len(nodes))
	for i, n := range nodes {
		if !v.CanSee(n.Kind, authorID) {
			n.Children = nil
		} else {
			n.Children = Redact(n.Children, v, authorID)
		}
		out[i] = n
	}

	return out
}
