package fritzbox

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

const (
	// SentinelSID is the session id the router reports while not authenticated.
	// It must never be used for data requests.
	SentinelSID = "0000000000000000"

	// LoginPath is the login endpoint, relative to the router base URL
	LoginPath = "/login_sid.lua"
)

// LoginState is a state of the two-round login handshake
type LoginState int

const (
	StateUnauthenticated LoginState = iota
	StateChallengeReceived
	StateAuthenticated
	StateRejected
)

// String returns the state name
func (s LoginState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateChallengeReceived:
		return "challenge_received"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// sessionInfo is the XML body returned by the login endpoint
type sessionInfo struct {
	XMLName   xml.Name `xml:"SessionInfo"`
	SID       string   `xml:"SID"`
	Challenge string   `xml:"Challenge"`
}

// Authenticator drives the login handshake against one router
type Authenticator struct {
	transport Transport
	baseURL   string
	state     LoginState
}

// NewAuthenticator creates an authenticator. baseURL is only used for error
// reporting; requests go through transport.
func NewAuthenticator(transport Transport, baseURL string) *Authenticator {
	return &Authenticator{
		transport: transport,
		baseURL:   baseURL,
		state:     StateUnauthenticated,
	}
}

// State returns the current handshake state
func (a *Authenticator) State() LoginState {
	return a.state
}

// Login performs the handshake and returns a session id.
//
// The first round fetches the challenge anonymously. A non-sentinel SID at
// that point means the router already accepts this client and is returned
// as is. Otherwise exactly one response round is sent; if the SID is still
// the sentinel the login is rejected with an authentication error.
// Transport errors abort the handshake and are returned unchanged.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	a.state = StateUnauthenticated
	logging.Info("Logging in to router", zap.String("url", a.baseURL))

	info, err := a.fetchSessionInfo(ctx, nil)
	if err != nil {
		return "", err
	}
	a.state = StateChallengeReceived

	if info.SID != SentinelSID {
		a.state = StateAuthenticated
		logging.Debug("Router accepted anonymous login")
		return info.SID, nil
	}

	query := url.Values{}
	query.Set("username", username)
	query.Set("response", ChallengeResponse(info.Challenge, password))

	info, err = a.fetchSessionInfo(ctx, query)
	if err != nil {
		a.state = StateUnauthenticated
		return "", err
	}

	if info.SID == SentinelSID {
		a.state = StateRejected
		return "", NewAuthError(a.baseURL)
	}

	a.state = StateAuthenticated
	logging.Info("Login successful", zap.String("sid_prefix", sidPrefix(info.SID)))
	return info.SID, nil
}

// Logout invalidates sid on the router
func (a *Authenticator) Logout(ctx context.Context, sid string) error {
	query := url.Values{}
	query.Set("logout", "1")
	query.Set("sid", sid)
	_, err := a.transport.Get(ctx, LoginPath, query)
	if err == nil {
		a.state = StateUnauthenticated
	}
	return err
}

func (a *Authenticator) fetchSessionInfo(ctx context.Context, query url.Values) (*sessionInfo, error) {
	body, err := a.transport.Get(ctx, LoginPath, query)
	if err != nil {
		a.state = StateUnauthenticated
		return nil, err
	}
	return parseSessionInfo(body)
}

func parseSessionInfo(body []byte) (*sessionInfo, error) {
	var info sessionInfo
	if err := xml.Unmarshal(body, &info); err != nil {
		return nil, NewParseError("failed to parse login response", err)
	}
	info.SID = strings.TrimSpace(info.SID)
	info.Challenge = strings.TrimSpace(info.Challenge)
	if info.SID == "" {
		return nil, NewParseError("login response has no SID", nil)
	}
	return &info, nil
}

func sidPrefix(sid string) string {
	if len(sid) > 4 {
		return sid[:4] + "..."
	}
	return sid
}
