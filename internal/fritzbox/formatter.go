package fritzbox

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatDevices returns the device table printed by --list-devices
func FormatDevices(devices []Device) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%-16s %-16s %s\n", "DEVICE_ID", "PROFILE_ID", "DEVICE_NAME"))
	for _, d := range devices {
		profile := d.ProfileID
		if profile == "" {
			profile = "NONE"
		}
		suffix := ""
		if !d.Active {
			suffix = " [NOT ACTIVE]"
		}
		b.WriteString(fmt.Sprintf("%-16s %-16s %s%s\n", d.PrimaryID, profile, d.Name, suffix))
	}

	return b.String()
}

// FormatProfiles returns the profile table printed by --list-profiles
func FormatProfiles(profiles []Profile) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%-16s %s\n", "PROFILE_ID", "PROFILE_NAME"))
	for _, p := range profiles {
		b.WriteString(fmt.Sprintf("%-16s %s\n", p.ID, p.Name))
	}

	return b.String()
}

// FormatChangeSet returns one line per submitted form field
func FormatChangeSet(cs *ChangeSet) string {
	var b strings.Builder
	for _, k := range cs.Keys() {
		b.WriteString(fmt.Sprintf("%s=%s\n", k, cs.Fields[k]))
	}
	return b.String()
}

// FormatJSON returns v as indented JSON
func FormatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
