package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(buildInfo{BinVersion: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "184.linea", "ens,a,b")
	require.NoError(t, err)

	var got []resolved
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].Valid)
	assert.Equal(t, "linea", got[0].Platform)
	assert.Equal(t, "184.linea.eth", got[0].ID)
	assert.False(t, got[1].Valid)
}

func TestPlatformsCommand(t *testing.T) {
	out, err := execute(t, "platforms", "--supported")
	require.NoError(t, err)
	assert.Contains(t, out, `"Key": "ens"`)
	assert.NotContains(t, out, `"Key": "bitcoin"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "test"`)
}

func TestProfileCommand(t *testing.T) {
	var paths []string
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		keys = append(keys, r.Header.Get("x-api-key"))
		if r.URL.Path == "/profile/ens/vitalik.eth" {
			_, _ = w.Write([]byte(`{"identity":"vitalik.eth","platform":"ens"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"identity":"vitalik.eth"},{"identity":"stani.lens"}]`))
	}))
	defer srv.Close()

	common := []string{"--endpoint", srv.URL, "--cache", "none", "--log-level", "error"}

	out, err := execute(t, append([]string{"profile", "vitalik.eth", "--api-key", "cli-key"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"identity": "vitalik.eth"`)

	_, err = execute(t, append([]string{"profile", "vitalik.eth", "stani.lens"}, common...)...)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, "cli-key", keys[0])
	assert.Equal(t, `/profile/batch/["vitalik.eth","stani.lens"]`, paths[1])
}

func TestDomainCommandRejectsInvalidIdentity(t *testing.T) {
	_, err := execute(t, "domain", "ens,a,b", "--endpoint", "http://127.0.0.1:1", "--cache", "none", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Identity or Domain")
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"identity":"vitalik.eth","platform":"ens"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cache.db")
	cfgPath := filepath.Join(dir, "web3bio.ini")
	content := "Endpoint = http://127.0.0.1:1\nCacheBackend = sqlite\nCacheDatabase = " + dbPath + "\nLogLevel = debug\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	out, err := execute(t, "profile", "vitalik.eth",
		"--config", cfgPath, "--endpoint", srv.URL, "--cache", "none", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, `"identity": "vitalik.eth"`)
	assert.Equal(t, 1, hits)

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "sqlite cache opened despite --cache none")
}
