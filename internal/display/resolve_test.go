package display

import "testing"

func TestResolveDisplayID_ByName(t *testing.T) {
	listing := "Display 0: primary\n  mDisplayId=0 real 1080x1920\nDisplay 7: ZiZipVirtual displayId=7 virtual 1080x1920\n"
	id, matched := ResolveDisplayID(listing, "ZiZipVirtual")
	if !matched || id != 7 {
		t.Fatalf("got id=%d matched=%v, want 7 true", id, matched)
	}
}

func TestResolveDisplayID_ByMarker(t *testing.T) {
	listing := "Display 0: primary\nDisplay: VirtualDisplay \"overlay\" displayId=12 state ON\n"
	id, matched := ResolveDisplayID(listing, "ZiZipVirtual")
	if !matched || id != 12 {
		t.Fatalf("got id=%d matched=%v, want 12 true", id, matched)
	}
}

func TestResolveDisplayID_FirstMatchWins(t *testing.T) {
	listing := "ZiZipVirtual displayId=4\nZiZipVirtual displayId=9\n"
	id, matched := ResolveDisplayID(listing, "ZiZipVirtual")
	if !matched || id != 4 {
		t.Fatalf("got id=%d matched=%v, want 4 true", id, matched)
	}
}

func TestResolveDisplayID_NoMarker(t *testing.T) {
	// Any well-formed listing without a recognizable marker must report no
	// match, deterministically, so callers can apply the documented fallback.
	tests := []string{
		"",
		"Display 0: primary displayId=0",
		"garbage output\nwith several\nlines",
		"ZiZipVirtual but no id token here",
		"VirtualDisplay displayId=x not a number",
	}
	for _, listing := range tests {
		if id, matched := ResolveDisplayID(listing, "ZiZipVirtual"); matched {
			t.Errorf("listing %q: unexpected match id=%d", listing, id)
		}
	}
}

func TestResolveDisplayID_TokenMidLine(t *testing.T) {
	listing := `  DisplayDeviceInfo{"ZiZipVirtual": uniqueId="virtual:com.zizip", displayId=42, 1080 x 1920}`
	id, matched := ResolveDisplayID(listing, "ZiZipVirtual")
	if !matched || id != 42 {
		t.Fatalf("got id=%d matched=%v, want 42 true", id, matched)
	}
}
