package identity

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// Performs the side effects of a reconciliation plan.
//
// The account's passwd and group records are updated to the target ids and
// written back under dir, then each chown path is walked and every
// filesystem object still owned by the old ids is re-owned. An empty plan
// is a no-op.
func Apply(plan *Plan, db *Database, dir string) error {
	if plan.Empty() {
		return nil
	}

	u, ok := db.User(plan.Account)
	if !ok {
		return fmt.Errorf("%w: user %q", ErrUnknownAccount, plan.Account)
	}

	if plan.SetGID {
		g, ok := db.Group(plan.Account)
		if !ok {
			return fmt.Errorf("%w: group %q", ErrUnknownAccount, plan.Account)
		}
		g.GID = plan.GID
		u.GID = plan.GID
	}

	if plan.SetUID {
		u.UID = plan.UID
	}

	if err := db.Save(dir); err != nil {
		return err
	}

	slog.Debug("account adjusted",
		"account", plan.Account,
		"uid", plan.UID, "gid", plan.GID,
		"old_uid", plan.OldUID, "old_gid", plan.OldGID,
	)

	for _, path := range plan.Chown {
		if err := chownTree(path, plan); err != nil {
			return err
		}
	}

	return nil
}

// Re-owns everything under root that still belongs to the plan's old ids.
//
// Objects owned by other accounts are left alone, so a shared directory is
// not hijacked wholesale. Symlinks are re-owned themselves, never their
// targets. A missing root is skipped: the source tree is mounted at run
// time and need not exist during every reconciliation.
func chownTree(root string, plan *Plan) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		st, ok := info.Sys().(*syscall.Stat_t)
		if !ok {
			return nil
		}

		uid, gid := -1, -1
		if plan.SetUID && st.Uid == uint32(plan.OldUID) {
			uid = plan.UID
		}
		if plan.SetGID && st.Gid == uint32(plan.OldGID) {
			gid = plan.GID
		}

		if uid == -1 && gid == -1 {
			return nil
		}

		return os.Lchown(path, uid, gid)
	})

	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: chown %s: %w", ErrDatabase, root, err)
	}

	return nil
}
