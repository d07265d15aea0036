package identity

import (
	"errors"
	"testing"
)

// Builds an env lookup function from a map.
func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	host, err := FromEnv(envLookup(map[string]string{
		EnvUID: "1000",
		EnvGID: "1000",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if host.UID != 1000 || host.GID != 1000 {
		t.Fatalf("host = %+v, want uid/gid 1000/1000", host)
	}
}

func TestFromEnvUnset(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"both missing", map[string]string{}},
		{"uid missing", map[string]string{EnvGID: "1000"}},
		{"gid missing", map[string]string{EnvUID: "1000"}},
		{"uid empty", map[string]string{EnvUID: "", EnvGID: "1000"}},
	}

	for _, tt := range tests {
		_, err := FromEnv(envLookup(tt.vars))
		if !errors.Is(err, ErrIdentityUnset) {
			t.Fatalf("%s: err = %v, want ErrIdentityUnset", tt.name, err)
		}
	}
}

func TestFromEnvMalformed(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"non-numeric uid", map[string]string{EnvUID: "alice", EnvGID: "1000"}},
		{"non-numeric gid", map[string]string{EnvUID: "1000", EnvGID: "staff"}},
		{"negative uid", map[string]string{EnvUID: "-1", EnvGID: "1000"}},
		{"float uid", map[string]string{EnvUID: "1000.5", EnvGID: "1000"}},
	}

	for _, tt := range tests {
		_, err := FromEnv(envLookup(tt.vars))
		if !errors.Is(err, ErrIdentityInvalid) {
			t.Fatalf("%s: err = %v, want ErrIdentityInvalid", tt.name, err)
		}
	}
}

func TestFromEnvRefusesRoot(t *testing.T) {
	_, err := FromEnv(envLookup(map[string]string{EnvUID: "0", EnvGID: "1000"}))
	if !errors.Is(err, ErrRootIdentity) {
		t.Fatalf("uid 0: err = %v, want ErrRootIdentity", err)
	}

	_, err = FromEnv(envLookup(map[string]string{EnvUID: "1000", EnvGID: "0"}))
	if !errors.Is(err, ErrRootIdentity) {
		t.Fatalf("gid 0: err = %v, want ErrRootIdentity", err)
	}
}

func TestEnviron(t *testing.T) {
	env := Host{UID: 1000, GID: 2000}.Environ()

	want := []string{"LOCAL_UID=1000", "LOCAL_GID=2000"}
	if len(env) != len(want) {
		t.Fatalf("Environ = %v, want %v", env, want)
	}
	for i := range want {
		if env[i] != want[i] {
			t.Fatalf("Environ[%d] = %q, want %q", i, env[i], want[i])
		}
	}
}
