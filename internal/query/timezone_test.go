package query

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestResolverDisplay(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{name: "empty means host-local", display: "", want: ""},
		{name: "sentinel means host-local", display: "Local", want: ""},
		{name: "explicit zone", display: "Asia/Shanghai", want: "Asia/Shanghai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.display)
			if got := r.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolverLocation(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	tests := []struct {
		name     string
		display  string
		taskZone string
		want     *time.Location
	}{
		{
			name:     "task zone wins over display",
			display:  "Asia/Shanghai",
			taskZone: "Europe/Berlin",
			want:     berlin,
		},
		{
			name:     "display used when task zone empty",
			display:  "Asia/Shanghai",
			taskZone: "",
			want:     shanghai,
		},
		{
			name:     "invalid task zone falls through to display",
			display:  "Asia/Shanghai",
			taskZone: "Not/AZone",
			want:     shanghai,
		},
		{
			name:     "no display falls through to local",
			display:  "",
			taskZone: "",
			want:     time.Local,
		},
		{
			name:     "sentinel display falls through to local",
			display:  "Local",
			taskZone: "",
			want:     time.Local,
		},
		{
			name:     "invalid display falls through to local",
			display:  "Not/AZone",
			taskZone: "",
			want:     time.Local,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.display)
			got := r.Location(tt.taskZone)
			if got.String() != tt.want.String() {
				t.Errorf("Location(%q) = %v, want %v", tt.taskZone, got, tt.want)
			}
		})
	}
}

func TestNewResolverFromEnv(t *testing.T) {
	t.Setenv(DisplayTimezoneEnv, "Asia/Shanghai")
	r := NewResolverFromEnv()
	if got := r.Display(); got != "Asia/Shanghai" {
		t.Errorf("Display() = %q, want %q", got, "Asia/Shanghai")
	}

	t.Setenv(DisplayTimezoneEnv, "")
	r = NewResolverFromEnv()
	if got := r.Display(); got != "" {
		t.Errorf("Display() = %q, want empty", got)
	}
}
