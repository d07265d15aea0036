package identity

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var samplePasswd = []byte(`root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
app:x:999:999::/home/app:/bin/bash
`)

var sampleGroup = []byte(`root:x:0:
daemon:x:1:
app:x:999:
sudo:x:27:alice,bob
`)

func TestParsePasswd(t *testing.T) {
	users, err := ParsePasswd(samplePasswd)
	if err != nil {
		t.Fatalf("ParsePasswd: %v", err)
	}

	if len(users) != 3 {
		t.Fatalf("len(users) = %d, want 3", len(users))
	}

	app := users[2]
	if app.Name != "app" || app.UID != 999 || app.GID != 999 {
		t.Fatalf("app = %+v, want app/999/999", app)
	}
	if app.Home != "/home/app" {
		t.Fatalf("app.Home = %q, want /home/app", app.Home)
	}
	if app.Shell != "/bin/bash" {
		t.Fatalf("app.Shell = %q, want /bin/bash", app.Shell)
	}
}

func TestParsePasswdMalformed(t *testing.T) {
	_, err := ParsePasswd([]byte("app:x:999:999:/home/app\n"))
	if !errors.Is(err, ErrDatabase) {
		t.Fatalf("err = %v, want ErrDatabase", err)
	}

	_, err = ParsePasswd([]byte("app:x:abc:999::/home/app:/bin/bash\n"))
	if !errors.Is(err, ErrDatabase) {
		t.Fatalf("bad uid: err = %v, want ErrDatabase", err)
	}
}

func TestParseGroup(t *testing.T) {
	groups, err := ParseGroup(sampleGroup)
	if err != nil {
		t.Fatalf("ParseGroup: %v", err)
	}

	if len(groups) != 4 {
		t.Fatalf("len(groups) = %d, want 4", len(groups))
	}

	sudo := groups[3]
	if sudo.Name != "sudo" || sudo.GID != 27 {
		t.Fatalf("sudo = %+v, want sudo/27", sudo)
	}
	if len(sudo.Members) != 2 || sudo.Members[0] != "alice" || sudo.Members[1] != "bob" {
		t.Fatalf("sudo.Members = %v, want [alice bob]", sudo.Members)
	}

	if len(groups[0].Members) != 0 {
		t.Fatalf("root.Members = %v, want empty", groups[0].Members)
	}
}

func TestPasswdRoundTrip(t *testing.T) {
	users, err := ParsePasswd(samplePasswd)
	if err != nil {
		t.Fatalf("ParsePasswd: %v", err)
	}

	if !bytes.Equal(formatPasswd(users), samplePasswd) {
		t.Fatalf("round trip mismatch:\n%s\nwant:\n%s", formatPasswd(users), samplePasswd)
	}
}

func TestGroupRoundTrip(t *testing.T) {
	groups, err := ParseGroup(sampleGroup)
	if err != nil {
		t.Fatalf("ParseGroup: %v", err)
	}

	if !bytes.Equal(formatGroup(groups), sampleGroup) {
		t.Fatalf("round trip mismatch:\n%s\nwant:\n%s", formatGroup(groups), sampleGroup)
	}
}

// Writes a sample database into a temp dir and returns the dir.
func writeDatabase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "passwd"), samplePasswd, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "group"), sampleGroup, 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadSave(t *testing.T) {
	dir := writeDatabase(t)

	db, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	u, ok := db.User("app")
	if !ok {
		t.Fatal("user app not found")
	}
	u.UID = 1000
	u.GID = 1000
	g, ok := db.Group("app")
	if !ok {
		t.Fatal("group app not found")
	}
	g.GID = 1000

	if err := db.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}

	u2, _ := reloaded.User("app")
	if u2.UID != 1000 || u2.GID != 1000 {
		t.Fatalf("reloaded app = %d/%d, want 1000/1000", u2.UID, u2.GID)
	}
	g2, _ := reloaded.Group("app")
	if g2.GID != 1000 {
		t.Fatalf("reloaded group app gid = %d, want 1000", g2.GID)
	}

	// Unrelated records survive untouched.
	d, _ := reloaded.User("daemon")
	if d.UID != 1 {
		t.Fatalf("daemon uid = %d, want 1", d.UID)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrDatabase) {
		t.Fatalf("err = %v, want ErrDatabase", err)
	}
}

func TestLookups(t *testing.T) {
	db := &Database{
		Users:  []User{{Name: "app", UID: 999, GID: 999}},
		Groups: []Group{{Name: "app", GID: 999}},
	}

	if _, ok := db.UserByUID(999); !ok {
		t.Fatal("UserByUID(999) not found")
	}
	if _, ok := db.UserByUID(1000); ok {
		t.Fatal("UserByUID(1000) unexpectedly found")
	}
	if _, ok := db.GroupByGID(999); !ok {
		t.Fatal("GroupByGID(999) not found")
	}
	if _, ok := db.Group("nope"); ok {
		t.Fatal("Group(nope) unexpectedly found")
	}
}
