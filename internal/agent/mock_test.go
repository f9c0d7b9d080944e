package agent

import (
	"context"
	"testing"
)

func TestKeywordDecider(t *testing.T) {
	tests := []struct {
		goal string
		want ActionType
	}{
		{"tap 100, 200", ActionTap},
		{"tap at 50 60", ActionTap},
		{"take a screenshot", ActionScreenshot},
		{"go back", ActionBack},
		{"go to the home screen", ActionHome},
		{`type "hello world"`, ActionInputText},
		{"open com.android.settings", ActionLaunchApp},
		{"launch settings", ActionLaunchApp},
		{"scroll down", ActionScroll},
		{"we are done here", ActionComplete},
		{"do a backflip", ActionUnknown},
	}

	d := KeywordDecider{}
	for _, tt := range tests {
		resp, err := d.Decide(context.Background(), tt.goal, ScreenContext{})
		if err != nil {
			t.Fatalf("%q: %v", tt.goal, err)
		}
		if resp.Action == nil {
			t.Fatalf("%q: expected an action", tt.goal)
		}
		if resp.Action.Type != tt.want {
			t.Errorf("%q: got %s, want %s", tt.goal, resp.Action.Type, tt.want)
		}
		if resp.Message == "" {
			t.Errorf("%q: message must not be empty", tt.goal)
		}
	}
}

func TestKeywordDecider_Details(t *testing.T) {
	d := KeywordDecider{}

	resp, _ := d.Decide(context.Background(), "tap 100, 200", ScreenContext{})
	if len(resp.Action.Points) != 1 || resp.Action.Points[0] != (Point{X: 100, Y: 200}) {
		t.Errorf("tap points = %v", resp.Action.Points)
	}

	resp, _ = d.Decide(context.Background(), `type "hi there"`, ScreenContext{})
	if resp.Action.Text != "hi there" {
		t.Errorf("type text = %q", resp.Action.Text)
	}

	resp, _ = d.Decide(context.Background(), "open com.example.app", ScreenContext{})
	if resp.Action.App != "com.example.app" {
		t.Errorf("launch app = %q", resp.Action.App)
	}

	resp, _ = d.Decide(context.Background(), "all done", ScreenContext{})
	if !resp.IsComplete {
		t.Error("done goal must set isComplete")
	}

	resp, _ = d.Decide(context.Background(), "", ScreenContext{})
	if resp.Action != nil {
		t.Error("empty goal should be a message-only turn")
	}
}
