package fritzbox

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

// Options configures Connect
type Options struct {
	// URL is the router base URL (default: DefaultURL)
	URL string
	// Username may be empty for routers without named users
	Username string
	Password string
	// Timeout per HTTP request (default: DefaultTimeout)
	Timeout time.Duration
	// Transport overrides the HTTP transport, mainly for tests
	Transport Transport
}

// Session is an authenticated connection to one router together with the
// inventory fetched at login. It is not safe for concurrent use; callers
// must serialize change requests.
type Session struct {
	url         string
	sid         string
	transport   Transport
	auth        *Authenticator
	inventory   *Inventory
	diagnostics []Diagnostic
}

// Connect logs in, fetches profiles, devices and current assignments, and
// reconciles them into one device table. Transport and authentication
// errors abort; if a fetch fails after login the session is logged out
// before returning. Reconciliation problems are kept as diagnostics.
func Connect(ctx context.Context, opts Options) (*Session, error) {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	transport := opts.Transport
	if transport == nil {
		t := NewHTTPTransport(opts.URL)
		t.SetTimeout(opts.Timeout)
		transport = t
	}

	auth := NewAuthenticator(transport, opts.URL)
	sid, err := auth.Login(ctx, opts.Username, opts.Password)
	if err != nil {
		return nil, err
	}

	s := &Session{
		url:       opts.URL,
		sid:       sid,
		transport: transport,
		auth:      auth,
	}
	if err := s.load(ctx); err != nil {
		if logoutErr := auth.Logout(ctx, sid); logoutErr != nil {
			logging.Debug("Logout after failed fetch failed", zap.Error(logoutErr))
		}
		return nil, err
	}
	return s, nil
}

func (s *Session) load(ctx context.Context) error {
	fetcher := NewFetcher(s.transport, s.sid)

	profiles, err := fetcher.FetchProfiles(ctx)
	if err != nil {
		return fmt.Errorf("fetching profiles: %w", err)
	}
	devices, err := fetcher.FetchDevices(ctx)
	if err != nil {
		return fmt.Errorf("fetching devices: %w", err)
	}
	rows, err := fetcher.FetchAssignments(ctx)
	if err != nil {
		return fmt.Errorf("fetching device profiles: %w", err)
	}

	s.inventory = NewInventory(profiles, devices)
	s.diagnostics = s.inventory.Reconcile(rows)

	logging.Info("Inventory loaded",
		zap.Int("profiles", len(profiles)),
		zap.Int("devices", len(devices)),
		zap.Int("assignment_rows", len(rows)),
		zap.Int("diagnostics", len(s.diagnostics)),
	)
	return nil
}

// URL returns the router base URL
func (s *Session) URL() string {
	return s.url
}

// SID returns the router session id
func (s *Session) SID() string {
	return s.sid
}

// Inventory returns the reconciled inventory
func (s *Session) Inventory() *Inventory {
	return s.inventory
}

// Profiles returns the profiles in router order
func (s *Session) Profiles() []Profile {
	return s.inventory.Profiles
}

// Devices returns the devices sorted by name, ignoring case
func (s *Session) Devices() []Device {
	return s.inventory.SortedDevices()
}

// Diagnostics returns the problems found while reconciling the inventory
func (s *Session) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// PlanProfiles resolves request without submitting anything
func (s *Session) PlanProfiles(request []Assignment) *ChangeSet {
	return s.inventory.BuildChangeSet(request)
}

// SetProfiles resolves request and submits all resolvable changes in one
// request. Unresolvable pairs are reported in the result's diagnostics.
func (s *Session) SetProfiles(ctx context.Context, request []Assignment) (*UpdateResult, error) {
	cs := s.PlanProfiles(request)
	return NewUpdater(s.transport, s.sid).Submit(ctx, cs)
}

// Close logs the session out of the router
func (s *Session) Close(ctx context.Context) error {
	return s.auth.Logout(ctx, s.sid)
}
