package fritzbox

// Profile is a parental-control access profile defined on the router
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Device is one LAN device known to the router.
//
// PrimaryID comes from the network device list and is stable. SecondaryID is
// the id the profile assignment page uses for the same device; it is only
// set when it differs from PrimaryID. ProfileID is the currently assigned
// profile. Empty strings mean absent.
type Device struct {
	PrimaryID   string `json:"primary_id"`
	SecondaryID string `json:"secondary_id,omitempty"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	ProfileID   string `json:"profile_id,omitempty"`
}

// AssignmentID returns the id the assignment page addresses this device by
func (d *Device) AssignmentID() string {
	if d.SecondaryID != "" {
		return d.SecondaryID
	}
	return d.PrimaryID
}

// HasID reports whether id is the primary or secondary id of the device
func (d *Device) HasID(id string) bool {
	return d.PrimaryID == id || (d.SecondaryID != "" && d.SecondaryID == id)
}

// AssignmentRow is one device row scraped from the profile assignment page
type AssignmentRow struct {
	Name        string
	SecondaryID string
	ProfileID   string
}

// Assignment is one requested device to profile change. DeviceKey may be a
// primary or secondary device id; ProfileKey is a profile id.
type Assignment struct {
	DeviceKey  string `yaml:"device" json:"device"`
	ProfileKey string `yaml:"profile" json:"profile"`
}
