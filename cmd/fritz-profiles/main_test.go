package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/fritz-profiles/internal/config"
	"github.com/muurk/fritz-profiles/internal/fritzbox"
	"github.com/muurk/fritz-profiles/internal/logging"
)

const (
	testChallenge = "1234567z"
	testPassword  = "äbc"
	testSID       = "c0ffeec0ffee0001"
)

type testRouter struct {
	mu       sync.Mutex
	commits  int
	assigned string
}

func (tr *testRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionInfo := func(sid string) {
		_, _ = w.Write([]byte("<SessionInfo><SID>" + sid + "</SID><Challenge>" + testChallenge + "</Challenge></SessionInfo>"))
	}

	switch r.URL.Path {
	case fritzbox.LoginPath:
		if r.URL.Query().Get("response") == "1234567z-9e224a41eeefa284df7bb0f26c2913e2" {
			sessionInfo(testSID)
			return
		}
		sessionInfo(fritzbox.SentinelSID)
	case fritzbox.DataPath:
		_ = r.ParseForm()
		switch {
		case r.PostForm.Get("page") == "kidPro":
			_, _ = w.Write([]byte(`<table id="uiProfileList"><tr><td class="name"><span>Homework</span></td>` +
				`<td class="btncolumn"><button name="edit" value="P1"></button></td></tr></table>`))
		case r.PostForm.Get("page") == "netDev":
			_, _ = w.Write([]byte(`{"data":{"active":[{"UID":"A1","name":"tablet"}],"passive":[{"UID":"A2","name":"tv"}]}}`))
		case r.PostForm.Has("apply"):
			tr.mu.Lock()
			tr.commits++
			tr.assigned = r.PostForm.Get("profile:A1")
			tr.mu.Unlock()
			_, _ = w.Write([]byte(`{}`))
		default:
			tr.mu.Lock()
			assigned := tr.assigned
			tr.mu.Unlock()
			if assigned == "" {
				_, _ = w.Write([]byte(`<table id="uiDevices"></table>`))
				return
			}
			_, _ = w.Write([]byte(`<table id="uiDevices"><tr><td><span>tablet</span></td><td></td><td></td>` +
				`<td><select name="profile:A1"><option value="` + assigned + `" selected></option></select></td><td></td></tr></table>`))
		}
	default:
		http.NotFound(w, r)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvURL, config.EnvUser, config.EnvTimeout, logging.LogLevelEnvVar} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvPassword, testPassword)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func startRouter(t *testing.T) (*testRouter, string) {
	t.Helper()
	tr := &testRouter{}
	srv := httptest.NewServer(tr)
	t.Cleanup(srv.Close)
	return tr, srv.URL
}

func TestRoot_ListDevices(t *testing.T) {
	_, url := startRouter(t)

	stdout, _, err := runCLI(t, "--url", url, "--list-devices")

	require.NoError(t, err)
	assert.Equal(t, fritzbox.FormatDevices([]fritzbox.Device{
		{PrimaryID: "A1", Name: "tablet", Active: true},
		{PrimaryID: "A2", Name: "tv"},
	}), stdout)
}

func TestRoot_ListProfilesJSON(t *testing.T) {
	_, url := startRouter(t)

	stdout, _, err := runCLI(t, "--url", url, "--list-profiles", "--format", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"P1","name":"Homework"}]`, stdout)
}

func TestRoot_DryRun(t *testing.T) {
	tr, url := startRouter(t)

	stdout, stderr, err := runCLI(t, "--url", url, "--dry-run", "A1=P1", "ghost=P1")

	require.NoError(t, err)
	assert.Equal(t, "profile:A1=P1\n", stdout)
	assert.Contains(t, stderr, "cannot identify device ghost")
	assert.Zero(t, tr.commits)
}

func TestRoot_Apply(t *testing.T) {
	tr, url := startRouter(t)

	_, stderr, err := runCLI(t, "--url", url, "A1=P1")

	require.NoError(t, err)
	assert.Equal(t, 1, tr.commits)
	assert.Contains(t, stderr, "Profiles updated")
}

func TestRoot_ApplySummaryListsDeviceOnce(t *testing.T) {
	tr, url := startRouter(t)

	_, stderr, err := runCLI(t, "--url", url, "A1=P1", "A1=P1")

	require.NoError(t, err)
	assert.Equal(t, 1, tr.commits)
	assert.Equal(t, 1, strings.Count(stderr, "tablet → Homework"))
}

func TestRoot_ApplyVerify(t *testing.T) {
	tr, url := startRouter(t)

	_, _, err := runCLI(t, "--url", url, "--verify", "A1=P1")

	require.NoError(t, err)
	assert.Equal(t, 1, tr.commits)
}

func TestRoot_FlagOverridesInvalidEnvURL(t *testing.T) {
	_, url := startRouter(t)
	clearEnv(t)
	t.Setenv(config.EnvURL, "fritz.box")

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "--url", url, "--list-profiles"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Homework")
}

func TestRoot_InvalidEnvURLWithoutFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvURL, "fritz.box")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "--list-profiles"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme must be http or https")
}

func TestRoot_WrongPassword(t *testing.T) {
	_, url := startRouter(t)

	_, _, err := runCLI(t, "--url", url, "--password", "nope", "--list-devices")

	require.Error(t, err)
	assert.True(t, fritzbox.IsAuthError(err))
}

func TestRoot_InvalidArgument(t *testing.T) {
	_, _, err := runCLI(t, "landevice1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected DEVICE=PROFILE")
}

func TestRoot_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "--format", "xml", "--list-devices")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestBuildRequest_ArgsOverridePreset(t *testing.T) {
	cfg := config.Example()

	request, err := buildRequest(cfg, "bedtime", []string{"landevice1234=filtprof1"})

	require.NoError(t, err)
	require.Len(t, request, 3)
	assert.Equal(t, fritzbox.Assignment{DeviceKey: "landevice1234", ProfileKey: "filtprof1"}, request[2])

	_, err = buildRequest(cfg, "weekend", nil)
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fritz", "config.yaml")
	for _, key := range []string{config.EnvURL, config.EnvUser, config.EnvTimeout, logging.LogLevelEnvVar} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvPassword, "do-not-print")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "init", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), path)

	cmd = newRootCmd()
	cmd.SetArgs([]string{"config", "init", "--config", path})
	assert.Error(t, cmd.Execute(), "init must not overwrite without --force")

	cmd = newRootCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "show", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "bedtime")
	assert.False(t, strings.Contains(out.String(), "do-not-print"))
}
