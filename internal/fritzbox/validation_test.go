package fritzbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		arg     string
		want    Assignment
		wantErr bool
	}{
		{arg: "landevice1=filtprof3", want: Assignment{DeviceKey: "landevice1", ProfileKey: "filtprof3"}},
		{arg: "user 7=filtprof1", want: Assignment{DeviceKey: "user 7", ProfileKey: "filtprof1"}},
		{arg: "landevice1", wantErr: true},
		{arg: "=filtprof3", wantErr: true},
		{arg: "landevice1=", wantErr: true},
		{arg: "a=b=c", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseAssignment(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "expected DEVICE=PROFILE")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAssignmentArgs(t *testing.T) {
	got, err := ParseAssignmentArgs([]string{"a=1", "b=2"})
	require.NoError(t, err)
	assert.Equal(t, []Assignment{{"a", "1"}, {"b", "2"}}, got)

	_, err = ParseAssignmentArgs([]string{"a=1", "broken"})
	assert.Error(t, err)
}

func TestValidateBaseURL(t *testing.T) {
	valid := []string{"http://fritz.box", "https://192.168.178.1", "http://[fe80::1]:8080"}
	for _, u := range valid {
		assert.NoError(t, ValidateBaseURL(u), u)
	}

	invalid := []string{"fritz.box", "ftp://fritz.box", "http://", "http://fritz.box?x=1", "http://fritz.box#top"}
	for _, u := range invalid {
		assert.Error(t, ValidateBaseURL(u), u)
	}
}
