package identity

import "fmt"

// The identity adjustment required to match a target host identity.
//
// A plan is produced by [Reconcile] and consumed by [Apply]. An empty plan
// (no ids to change) means the account already matches the target and
// nothing needs to happen.
type Plan struct {
	Account string   // Account being adjusted.
	UID     int      // Target user id.
	GID     int      // Target group id.
	OldUID  int      // User id before the adjustment.
	OldGID  int      // Group id before the adjustment.
	SetUID  bool     // Whether the user id differs and must change.
	SetGID  bool     // Whether the group id differs and must change.
	Chown   []string // Paths to re-own from the old ids to the new ones.
}

// Whether the plan requires no changes.
func (p *Plan) Empty() bool {
	return !p.SetUID && !p.SetGID
}

// Compares the target host identity against the account database and
// produces the adjustment plan.
//
// Pure: the database is only read. The account and its same-named primary
// group must exist. A target id already held by a different user or group
// is a distinct error ([ErrUIDInUse], [ErrGIDInUse]) naming the holder;
// reassigning would leave two accounts sharing an id and make file
// ownership ambiguous. When both ids already match, the returned plan is
// empty, which makes reconciliation idempotent.
//
// The chown paths are attached to the plan only when an id actually
// changes, so an empty plan performs no filesystem work either.
func Reconcile(target Host, account string, db *Database, chown []string) (*Plan, error) {
	u, ok := db.User(account)
	if !ok {
		return nil, fmt.Errorf("%w: user %q", ErrUnknownAccount, account)
	}

	g, ok := db.Group(account)
	if !ok {
		return nil, fmt.Errorf("%w: group %q", ErrUnknownAccount, account)
	}

	plan := &Plan{
		Account: account,
		UID:     target.UID,
		GID:     target.GID,
		OldUID:  u.UID,
		OldGID:  g.GID,
	}

	if g.GID != target.GID {
		if holder, ok := db.GroupByGID(target.GID); ok && holder.Name != account {
			return nil, fmt.Errorf("%w: gid %d is held by group %q", ErrGIDInUse, target.GID, holder.Name)
		}
		plan.SetGID = true
	}

	if u.UID != target.UID {
		if holder, ok := db.UserByUID(target.UID); ok && holder.Name != account {
			return nil, fmt.Errorf("%w: uid %d is held by user %q", ErrUIDInUse, target.UID, holder.Name)
		}
		plan.SetUID = true
	}

	if !plan.Empty() {
		plan.Chown = chown
	}

	return plan, nil
}
