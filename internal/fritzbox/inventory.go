package fritzbox

import (
	"sort"
	"strings"
)

// Inventory holds the profiles and devices fetched for one session.
// Lookups are linear scans; the table is small and the merge rule needs a
// full scan anyway to detect ambiguity.
type Inventory struct {
	Profiles []Profile
	Devices  []Device
}

// NewInventory creates an inventory from freshly fetched lists
func NewInventory(profiles []Profile, devices []Device) *Inventory {
	return &Inventory{Profiles: profiles, Devices: devices}
}

// Merge folds one assignment page row into the device table.
//
// A device matches when its primary id equals the row's secondary id or its
// name equals the row's name. The whole table is scanned first: zero or
// several distinct matches leave the table untouched and yield a diagnostic.
// With exactly one match the device's profile is set, and its secondary id
// is recorded if it differs from the primary id.
func (inv *Inventory) Merge(row AssignmentRow) *Diagnostic {
	var matches []int
	for i := range inv.Devices {
		d := &inv.Devices[i]
		if d.PrimaryID == row.SecondaryID || d.Name == row.Name {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return &Diagnostic{Kind: DiagNoMatch, Key: row.SecondaryID, Name: row.Name}
	case 1:
	default:
		ids := make([]string, len(matches))
		for i, idx := range matches {
			ids[i] = inv.Devices[idx].PrimaryID
		}
		return &Diagnostic{Kind: DiagAmbiguousMatch, Key: row.SecondaryID, Name: row.Name, Matches: ids}
	}

	d := &inv.Devices[matches[0]]
	if d.PrimaryID != row.SecondaryID {
		d.SecondaryID = row.SecondaryID
	}
	d.ProfileID = row.ProfileID
	return nil
}

// Reconcile merges all rows in order and returns one diagnostic per row
// that could not be merged
func (inv *Inventory) Reconcile(rows []AssignmentRow) []Diagnostic {
	var diags []Diagnostic
	for _, row := range rows {
		if diag := inv.Merge(row); diag != nil {
			logDiagnostic(*diag)
			diags = append(diags, *diag)
		}
	}
	return diags
}

// FindDevice returns the first device whose primary or secondary id is id
func (inv *Inventory) FindDevice(id string) (*Device, bool) {
	for i := range inv.Devices {
		if inv.Devices[i].HasID(id) {
			return &inv.Devices[i], true
		}
	}
	return nil, false
}

// FindProfile returns the profile with the given id
func (inv *Inventory) FindProfile(id string) (*Profile, bool) {
	for i := range inv.Profiles {
		if inv.Profiles[i].ID == id {
			return &inv.Profiles[i], true
		}
	}
	return nil, false
}

// SortedDevices returns a copy of the devices ordered by name, ignoring case
func (inv *Inventory) SortedDevices() []Device {
	devices := make([]Device, len(inv.Devices))
	copy(devices, inv.Devices)
	sort.SliceStable(devices, func(i, j int) bool {
		return strings.ToLower(devices[i].Name) < strings.ToLower(devices[j].Name)
	})
	return devices
}
