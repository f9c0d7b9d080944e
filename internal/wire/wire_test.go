package wire

import "testing"

func TestWireStrings(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"create", CreateDisplay{Width: 1080, Height: 1920, DPI: 320, Name: "ZiZipVirtual"},
			"create-display --width 1080 --height 1920 --density 320 ZiZipVirtual"},
		{"remove", RemoveDisplay{ID: 7}, "remove-display 7"},
		{"list", ListDisplays{}, "list-displays"},
		{"capture virtual", Capture{On: Display(7), Path: "/sdcard/Download/s.png"},
			"capture -d 7 -p /sdcard/Download/s.png"},
		{"capture primary", Capture{Path: "/sdcard/Download/s.png"},
			"capture -p /sdcard/Download/s.png"},
		{"tap virtual", Tap{On: Display(7), X: 100, Y: 200}, "input -d 7 tap 100 200"},
		{"tap primary", Tap{X: 100, Y: 200}, "input tap 100 200"},
		{"swipe virtual", Swipe{On: Display(3), X1: 540, Y1: 1500, X2: 540, Y2: 500, DurationMS: 300},
			"input -d 3 swipe 540 1500 540 500 300"},
		{"swipe primary", Swipe{X1: 540, Y1: 1500, X2: 540, Y2: 500, DurationMS: 300},
			"input swipe 540 1500 540 500 300"},
		{"keyevent virtual", KeyEvent{On: Display(7), Code: 4}, "input -d 7 keyevent 4"},
		{"keyevent primary", KeyEvent{Code: 3}, "input keyevent 3"},
		{"motionevent", MotionEvent{On: Display(7), Action: MotionDown, X: 10, Y: 20},
			"input -d 7 motionevent DOWN 10 20"},
		{"motionevent primary", MotionEvent{Action: MotionUp, X: 10, Y: 20},
			"input motionevent UP 10 20"},
		{"screen size", ScreenSize{}, "wm size"},
		{"launch", LaunchApp{Package: "com.android.settings"},
			"monkey -p com.android.settings -c android.intent.category.LAUNCHER 1"},
		{"start activity", StartActivity{Component: "com.android.settings/.Settings"},
			"am start -n com.android.settings/.Settings"},
		{"foreground", ForegroundWindow{}, "dumpsys window | grep mCurrentFocus"},
		{"node tree", DumpNodeTree{Path: "/sdcard/window_dump.xml"},
			"uiautomator dump /sdcard/window_dump.xml && cat /sdcard/window_dump.xml"},
	}
	for _, tt := range tests {
		if got := tt.cmd.Wire(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCommitText_Base64(t *testing.T) {
	// "héllo" must survive as base64, not as raw keyevents.
	got := CommitText{Text: "héllo"}.Wire()
	want := "am broadcast -a ADB_INPUT_B64 --es msg aMOpbGxv"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTarget(t *testing.T) {
	if Primary().Scoped() {
		t.Error("Primary() should not be scoped")
	}
	d := Display(7)
	if !d.Scoped() || d.ID() != 7 {
		t.Errorf("Display(7) = scoped=%v id=%d", d.Scoped(), d.ID())
	}
}
