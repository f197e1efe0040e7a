package fritzbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDevices(t *testing.T) {
	out := FormatDevices([]Device{
		{PrimaryID: "landevice1", Name: "laptop", Active: true, ProfileID: "filtprof1"},
		{PrimaryID: "landevice3", Name: "console"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "DEVICE_ID        PROFILE_ID       DEVICE_NAME", lines[0])
	assert.Equal(t, "landevice1       filtprof1        laptop", lines[1])
	assert.Equal(t, "landevice3       NONE             console [NOT ACTIVE]", lines[2])
}

func TestFormatProfiles(t *testing.T) {
	out := FormatProfiles([]Profile{{ID: "filtprof1", Name: "Standard"}})

	assert.Equal(t, "PROFILE_ID       PROFILE_NAME\nfiltprof1        Standard\n", out)
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON([]Profile{{ID: "filtprof1", Name: "Standard"}})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"filtprof1","name":"Standard"}]`, out)
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "cannot identify device landevice9", Diagnostic{Kind: DiagUnknownDevice, Key: "landevice9"}.String())
	assert.Equal(t, "cannot identify profile filtprof9", Diagnostic{Kind: DiagUnknownProfile, Key: "filtprof9"}.String())
	assert.Equal(t, "no match for user7            phone", Diagnostic{Kind: DiagNoMatch, Key: "user7", Name: "phone"}.String())
	assert.Equal(t, "ambiguous_match", DiagAmbiguousMatch.String())
}
