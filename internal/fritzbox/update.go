package fritzbox

import (
	"context"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

// Change is one resolved device to profile assignment
type Change struct {
	Device  Device
	Profile Profile
}

// FieldKey returns the form field the assignment page expects for this change
func (c Change) FieldKey() string {
	return "profile:" + c.Device.AssignmentID()
}

// ChangeSet is the resolved form of a change request
type ChangeSet struct {
	// Changes in request order, one entry per resolved pair
	Changes []Change
	// Fields maps form field key to profile id; later pairs for the same
	// device override earlier ones
	Fields map[string]string
	// Diagnostics for every pair that could not be resolved
	Diagnostics []Diagnostic
}

// Empty reports whether nothing would be submitted
func (cs *ChangeSet) Empty() bool {
	return len(cs.Fields) == 0
}

// Keys returns the field keys in sorted order
func (cs *ChangeSet) Keys() []string {
	keys := make([]string, 0, len(cs.Fields))
	for k := range cs.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Effective returns the change that ends up in the submitted form for each
// field key, ordered by key. Earlier changes to the same device are dropped.
func (cs *ChangeSet) Effective() []Change {
	last := make(map[string]Change, len(cs.Fields))
	for _, c := range cs.Changes {
		last[c.FieldKey()] = c
	}

	out := make([]Change, 0, len(last))
	for _, k := range cs.Keys() {
		if c, ok := last[k]; ok {
			out = append(out, c)
		}
	}
	return out
}

// BuildChangeSet resolves a change request against the inventory without
// touching the network. Unresolvable pairs are reported and skipped.
func (inv *Inventory) BuildChangeSet(request []Assignment) *ChangeSet {
	cs := &ChangeSet{Fields: make(map[string]string)}

	for _, a := range request {
		device, ok := inv.FindDevice(a.DeviceKey)
		if !ok {
			diag := Diagnostic{Kind: DiagUnknownDevice, Key: a.DeviceKey}
			logDiagnostic(diag)
			cs.Diagnostics = append(cs.Diagnostics, diag)
			continue
		}
		profile, ok := inv.FindProfile(a.ProfileKey)
		if !ok {
			diag := Diagnostic{Kind: DiagUnknownProfile, Key: a.ProfileKey}
			logDiagnostic(diag)
			cs.Diagnostics = append(cs.Diagnostics, diag)
			continue
		}

		logging.Info("Changing device profile",
			zap.String("device_id", a.DeviceKey),
			zap.String("device_name", device.Name),
			zap.String("profile_id", profile.ID),
			zap.String("profile_name", profile.Name),
		)

		change := Change{Device: *device, Profile: *profile}
		cs.Changes = append(cs.Changes, change)
		cs.Fields[change.FieldKey()] = profile.ID
	}

	return cs
}

// UpdateResult describes a submitted (or skipped) profile update
type UpdateResult struct {
	ChangeSet *ChangeSet
	// Submitted is true when the commit request was sent
	Submitted bool
}

// Diagnostics returns the per-pair problems of the update
func (r *UpdateResult) Diagnostics() []Diagnostic {
	return r.ChangeSet.Diagnostics
}

// Updater commits profile assignments for one session
type Updater struct {
	transport Transport
	sid       string
}

// NewUpdater creates an updater bound to an authenticated session id
func NewUpdater(transport Transport, sid string) *Updater {
	return &Updater{transport: transport, sid: sid}
}

// CommitForm returns the form posted to apply cs
func (u *Updater) CommitForm(cs *ChangeSet) url.Values {
	form := url.Values{}
	form.Set("xhr", "1")
	form.Set("sid", u.sid)
	form.Set("apply", "")
	form.Set("oldpage", UserListPage)
	for k, v := range cs.Fields {
		form.Set(k, v)
	}
	return form
}

// Submit posts cs in a single request. An empty change set is not sent.
// Success is assumed when the request completes without a transport error.
func (u *Updater) Submit(ctx context.Context, cs *ChangeSet) (*UpdateResult, error) {
	result := &UpdateResult{ChangeSet: cs}
	if cs.Empty() {
		logging.Info("No resolvable profile changes, nothing to submit")
		return result, nil
	}

	logging.Info("Updating device profiles", zap.Int("changes", len(cs.Fields)))
	if _, err := u.transport.PostForm(ctx, DataPath, u.CommitForm(cs)); err != nil {
		return nil, err
	}
	result.Submitted = true
	return result, nil
}
