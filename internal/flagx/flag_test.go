package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-a", "http://localhost:8080", "-c", "conf.json", "--other", "x"},
			allowedFlags: []string{"-c", "-a"},
			want:         []string{"-a", "http://localhost:8080", "-c", "conf.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPartition_KeepsPositionalArgs(t *testing.T) {
	args := []string{"-a", "http://share.local", "upload", "-l=debug", "notes.txt"}

	matched, rest := Partition(args, []string{"-a", "-l"})

	assert.Equal(t, []string{"-a", "http://share.local", "-l=debug"}, matched)
	assert.Equal(t, []string{"upload", "notes.txt"}, rest)
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "short -c with value", args: []string{"-c", "/path/short.json"}, want: "/path/short.json"},
		{name: "long -config with value", args: []string{"-config", "/path/long.json"}, want: "/path/long.json"},
		{name: "unknown flags are ignored", args: []string{"-x", "1", "view", "abc"}, want: ""},
		{name: "multiple flags, last wins", args: []string{"-c", "/path/1.json", "-config", "/path/2.json"}, want: "/path/2.json"},
		{name: "dangling -c", args: []string{"-c"}, wantErr: true},
		{name: "-c followed by another flag", args: []string{"-c", "-a", "http://x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfigPath(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
