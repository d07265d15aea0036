package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// A user record from the passwd file.
type User struct {
	Name     string // Account name.
	Password string // Password field, normally "x".
	UID      int    // Numeric user id.
	GID      int    // Numeric id of the primary group.
	Gecos    string // Comment field.
	Home     string // Home directory.
	Shell    string // Login shell.
}

// A group record from the group file.
type Group struct {
	Name     string   // Group name.
	Password string   // Password field, normally "x".
	GID      int      // Numeric group id.
	Members  []string // Supplementary member names.
}

// The parsed account database of a container.
//
// Records keep their file order so a rewrite produces a minimal diff
// against the original files.
type Database struct {
	Users  []User
	Groups []Group
}

// Reads the passwd and group files under dir (normally "/etc").
func Load(dir string) (*Database, error) {
	pb, err := os.ReadFile(filepath.Join(dir, "passwd"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	gb, err := os.ReadFile(filepath.Join(dir, "group"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	users, err := ParsePasswd(pb)
	if err != nil {
		return nil, err
	}

	groups, err := ParseGroup(gb)
	if err != nil {
		return nil, err
	}

	return &Database{Users: users, Groups: groups}, nil
}

// Writes the passwd and group files back under dir.
//
// Each file is written to a temporary sibling and renamed into place so a
// crash mid-write cannot leave a truncated database.
func (db *Database) Save(dir string) error {
	if err := writeFile(filepath.Join(dir, "passwd"), formatPasswd(db.Users)); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if err := writeFile(filepath.Join(dir, "group"), formatGroup(db.Groups)); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}

// Returns a mutable reference to the user with the given name.
func (db *Database) User(name string) (*User, bool) {
	for i := range db.Users {
		if db.Users[i].Name == name {
			return &db.Users[i], true
		}
	}
	return nil, false
}

// Returns the user currently holding the given uid.
func (db *Database) UserByUID(uid int) (*User, bool) {
	for i := range db.Users {
		if db.Users[i].UID == uid {
			return &db.Users[i], true
		}
	}
	return nil, false
}

// Returns a mutable reference to the group with the given name.
func (db *Database) Group(name string) (*Group, bool) {
	for i := range db.Groups {
		if db.Groups[i].Name == name {
			return &db.Groups[i], true
		}
	}
	return nil, false
}

// Returns the group currently holding the given gid.
func (db *Database) GroupByGID(gid int) (*Group, bool) {
	for i := range db.Groups {
		if db.Groups[i].GID == gid {
			return &db.Groups[i], true
		}
	}
	return nil, false
}

// Parses the contents of a passwd file.
//
// Each non-empty line must have the seven colon-separated fields
// name:password:uid:gid:gecos:home:shell.
func ParsePasswd(content []byte) ([]User, error) {
	var users []User

	for i, line := range splitLines(content) {
		fields := strings.Split(line, ":")
		if len(fields) != 7 {
			return nil, fmt.Errorf("%w: passwd line %d: expected 7 fields, got %d", ErrDatabase, i+1, len(fields))
		}

		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: passwd line %d: bad uid %q", ErrDatabase, i+1, fields[2])
		}
		gid, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: passwd line %d: bad gid %q", ErrDatabase, i+1, fields[3])
		}

		users = append(users, User{
			Name:     fields[0],
			Password: fields[1],
			UID:      uid,
			GID:      gid,
			Gecos:    fields[4],
			Home:     fields[5],
			Shell:    fields[6],
		})
	}

	return users, nil
}

// Parses the contents of a group file.
//
// Each non-empty line must have the four colon-separated fields
// name:password:gid:members.
func ParseGroup(content []byte) ([]Group, error) {
	var groups []Group

	for i, line := range splitLines(content) {
		fields := strings.Split(line, ":")
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: group line %d: expected 4 fields, got %d", ErrDatabase, i+1, len(fields))
		}

		gid, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: group line %d: bad gid %q", ErrDatabase, i+1, fields[2])
		}

		var members []string
		if fields[3] != "" {
			members = strings.Split(fields[3], ",")
		}

		groups = append(groups, Group{
			Name:     fields[0],
			Password: fields[1],
			GID:      gid,
			Members:  members,
		})
	}

	return groups, nil
}

// Serializes user records back to passwd file format.
func formatPasswd(users []User) []byte {
	var sb strings.Builder
	for _, u := range users {
		fmt.Fprintf(&sb, "%s:%s:%d:%d:%s:%s:%s\n",
			u.Name, u.Password, u.UID, u.GID, u.Gecos, u.Home, u.Shell)
	}
	return []byte(sb.String())
}

// Serializes group records back to group file format.
func formatGroup(groups []Group) []byte {
	var sb strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&sb, "%s:%s:%d:%s\n",
			g.Name, g.Password, g.GID, strings.Join(g.Members, ","))
	}
	return []byte(sb.String())
}

// Splits file content into non-empty lines.
func splitLines(content []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Atomically replaces the file at path with the given content.
func writeFile(path string, content []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
