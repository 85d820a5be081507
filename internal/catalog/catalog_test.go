package catalog

import "testing"

func TestHasPlan(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name    string
		service string
		plan    string
		want    bool
	}{
		{
			name:    "known service and plan",
			service: "Netflix",
			plan:    "Премиум",
			want:    true,
		},
		{
			name:    "case insensitive",
			service: "netflix",
			plan:    "премиум",
			want:    true,
		},
		{
			name:    "unknown plan",
			service: "Netflix",
			plan:    "Ультра",
			want:    false,
		},
		{
			name:    "unknown service",
			service: "Hulu",
			plan:    "Базовый",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HasPlan(tt.service, tt.plan); got != tt.want {
				t.Errorf("HasPlan(%q, %q) = %v, want %v", tt.service, tt.plan, got, tt.want)
			}
		})
	}
}

func TestServicesNotEmpty(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(c.Services()) == 0 {
		t.Fatal("catalog has no services")
	}
}
