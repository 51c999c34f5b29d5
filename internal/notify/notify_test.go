package notify

import "testing"

func TestNewKinds(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindLog, "notify.Log"},
		{KindNone, "notify.Nop"},
		{Kind("bogus"), "notify.Log"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			n := New(tt.kind)
			switch tt.want {
			case "notify.Log":
				if _, ok := n.(Log); !ok {
					t.Errorf("New(%q) = %T, want Log", tt.kind, n)
				}
			case "notify.Nop":
				if _, ok := n.(Nop); !ok {
					t.Errorf("New(%q) = %T, want Nop", tt.kind, n)
				}
			}
		})
	}
}

func TestNopStageIsSilent(t *testing.T) {
	// must not panic or block
	Nop{}.Stage("capturing")
}
