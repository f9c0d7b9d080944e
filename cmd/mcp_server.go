package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/zizip/droid-cli/internal/agent"
	"github.com/zizip/droid-cli/internal/dispatch"
	"github.com/zizip/droid-cli/internal/output"
	"github.com/zizip/droid-cli/internal/remote"
	"github.com/zizip/droid-cli/internal/vision"
)

// mcpServer wraps the MCP server with the wired automation stack. Unlike the
// one-shot CLI commands, the server process is long-lived, so the virtual
// display session survives across tool calls.
type mcpServer struct {
	app        *appContext
	dispatcher *dispatch.Dispatcher
	observer   *dispatch.Observer
	bridge     *remote.Bridge
	deviceMu   sync.Mutex
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all droid-cli tools.
func newMCPServer(app *appContext) *mcpServer {
	cfg := app.cfg.Display
	s := &mcpServer{
		app:        app,
		dispatcher: dispatch.New(app.screen, app.manager, app.launcher, app.log),
		observer:   dispatch.NewObserver(app.runner, app.screen, app.manager, app.log),
		bridge:     remote.NewBridge(app.manager, cfg.Width, cfg.Height, cfg.DPI, app.log),
	}

	s.mcp = mcpserver.NewMCPServer(
		"droid-cli",
		"1.0.0",
	)

	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// tap
	s.mcp.AddTool(
		mcp.NewTool("tap",
			mcp.WithDescription("Tap the screen at the given coordinates. Uses the virtual display when a session is active."),
			mcp.WithNumber("x", mcp.Description("X coordinate in pixels"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate in pixels"), mcp.Required()),
		),
		s.handleTap,
	)

	// swipe
	s.mcp.AddTool(
		mcp.NewTool("swipe",
			mcp.WithDescription("Swipe between two points. Uses the virtual display when a session is active."),
			mcp.WithNumber("x1", mcp.Description("Start X"), mcp.Required()),
			mcp.WithNumber("y1", mcp.Description("Start Y"), mcp.Required()),
			mcp.WithNumber("x2", mcp.Description("End X"), mcp.Required()),
			mcp.WithNumber("y2", mcp.Description("End Y"), mcp.Required()),
			mcp.WithNumber("duration", mcp.Description("Gesture duration in ms (default: 300)")),
		),
		s.handleSwipe,
	)

	// key
	s.mcp.AddTool(
		mcp.NewTool("key",
			mcp.WithDescription("Press a key on the primary display by Android key code or name (back, home, enter)"),
			mcp.WithString("key", mcp.Description("Key code or name"), mcp.Required()),
		),
		s.handleKey,
	)

	// type
	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text into the focused input field. Unicode is supported."),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
		),
		s.handleType,
	)

	// launch
	s.mcp.AddTool(
		mcp.NewTool("launch",
			mcp.WithDescription("Launch an app by package name or explicit component (pkg/Activity)"),
			mcp.WithString("app", mcp.Description("Package name or component"), mcp.Required()),
		),
		s.handleLaunch,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture a screenshot. Uses the virtual display when a session is active. Returns a PNG image."),
			mcp.WithBoolean("grid", mcp.Description("Overlay a labeled coordinate grid")),
			mcp.WithNumber("grid-spacing", mcp.Description("Grid line spacing in pixels (default: 100)")),
		),
		s.handleScreenshot,
	)

	// observe
	s.mcp.AddTool(
		mcp.NewTool("observe",
			mcp.WithDescription("Observe the current screen: foreground app, activity, and UI node tree"),
		),
		s.handleObserve,
	)

	// act
	s.mcp.AddTool(
		mcp.NewTool("act",
			mcp.WithDescription("Dispatch one decision-maker response: a JSON object with message, action {actionType, points, text, app, durationMs}, isComplete"),
			mcp.WithString("response", mcp.Description("Decision-maker response as JSON"), mcp.Required()),
		),
		s.handleAct,
	)

	// display_create
	s.mcp.AddTool(
		mcp.NewTool("display_create",
			mcp.WithDescription("Create an isolated virtual display session. Subsequent taps, swipes and screenshots target it."),
			mcp.WithNumber("width", mcp.Description("Width in pixels (default from config)")),
			mcp.WithNumber("height", mcp.Description("Height in pixels (default from config)")),
			mcp.WithNumber("dpi", mcp.Description("Density (default from config)")),
		),
		s.handleDisplayCreate,
	)

	// display_remove
	s.mcp.AddTool(
		mcp.NewTool("display_remove",
			mcp.WithDescription("Tear down the virtual display session"),
		),
		s.handleDisplayRemove,
	)

	// display_status
	s.mcp.AddTool(
		mcp.NewTool("display_status",
			mcp.WithDescription("Report the virtual display session state"),
		),
		s.handleDisplayStatus,
	)

	// remote_touch
	s.mcp.AddTool(
		mcp.NewTool("remote_touch",
			mcp.WithDescription("Forward one streamed pointer phase to the virtual display (remote viewer input)"),
			mcp.WithString("phase", mcp.Description("Pointer phase: down, move, up"), mcp.Required()),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
		),
		s.handleRemoteTouch,
	)

	// remote_frame
	s.mcp.AddTool(
		mcp.NewTool("remote_frame",
			mcp.WithDescription("Grab one frame from the virtual display session, establishing it if needed. Returns a PNG image."),
		),
		s.handleRemoteFrame,
	)
}

// resultToText serializes a StepResult to YAML for MCP response.
func resultToText(result output.StepResult) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\ndetail: %s", result.OK, result.Detail)
	}
	return string(b)
}

// stepResult wraps a device action with the shared lock and the OK/detail envelope.
func (s *mcpServer) stepResult(ok bool, failDetail string) *mcp.CallToolResult {
	result := output.StepResult{OK: ok, TS: time.Now().Unix()}
	if !ok {
		result.Detail = failDetail
		return mcp.NewToolResultError(resultToText(result))
	}
	return mcp.NewToolResultText(resultToText(result))
}

func (s *mcpServer) handleTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x := intParam(params, "x", 0)
	y := intParam(params, "y", 0)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	outcome := s.dispatcher.Execute(ctx, agent.ModelResponse{Action: &agent.AgentAction{
		Type:   agent.ActionTap,
		Points: []agent.Point{{X: x, Y: y}},
	}})
	return outcomeToResult(outcome), nil
}

func (s *mcpServer) handleSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	duration := intParam(params, "duration", 300)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	outcome := s.dispatcher.Execute(ctx, agent.ModelResponse{Action: &agent.AgentAction{
		Type: agent.ActionSwipe,
		Points: []agent.Point{
			{X: intParam(params, "x1", 0), Y: intParam(params, "y1", 0)},
			{X: intParam(params, "x2", 0), Y: intParam(params, "y2", 0)},
		},
		DurationMS: duration,
	}})
	return outcomeToResult(outcome), nil
}

func (s *mcpServer) handleKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := stringParam(request.GetArguments(), "key", "")

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	switch key {
	case "back":
		return s.stepResult(s.app.screen.PressBack(ctx), "back press failed"), nil
	case "home":
		return s.stepResult(s.app.screen.PressHome(ctx), "home press failed"), nil
	}
	code, ok := namedKeys[key]
	if !ok {
		var err error
		code, err = strconv.Atoi(key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown key %q (use a key code or back, home, enter)", key)), nil
		}
	}
	return s.stepResult(s.app.screen.Key(ctx, code), "key press failed"), nil
}

func (s *mcpServer) handleType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := stringParam(request.GetArguments(), "text", "")
	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	return s.stepResult(s.app.screen.InputText(ctx, text), "text input failed"), nil
}

func (s *mcpServer) handleLaunch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	appName := stringParam(request.GetArguments(), "app", "")
	if appName == "" {
		return mcp.NewToolResultError("app parameter is required"), nil
	}

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	return s.stepResult(s.app.launcher.Launch(ctx, appName), "launch failed"), nil
}

func (s *mcpServer) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	grid := boolParam(params, "grid", false)
	spacing := intParam(params, "grid-spacing", vision.DefaultGridSpacing)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	var path string
	var ok bool
	if s.app.manager.Active() {
		path, ok = s.app.manager.Screenshot(ctx)
	} else {
		path, ok = s.app.screen.Screenshot(ctx)
	}
	if !ok {
		return mcp.NewToolResultError("screenshot capture failed"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read screenshot %s: %v", path, err)), nil
	}
	if grid {
		data, err = vision.OverlayGrid(data, vision.GridOptions{Spacing: spacing})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return pngResult(data), nil
}

func (s *mcpServer) handleObserve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	screen := s.observer.Observe(ctx)
	summary := struct {
		ForegroundPackage  string `yaml:"foregroundPackage,omitempty"`
		ForegroundActivity string `yaml:"foregroundActivity,omitempty"`
		NodeTree           string `yaml:"nodeTree,omitempty"`
	}{screen.ForegroundPackage, screen.ForegroundActivity, screen.NodeTree}

	b, err := yaml.Marshal(summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := stringParam(request.GetArguments(), "response", "")

	var resp agent.ModelResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse response: %v", err)), nil
	}

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	return outcomeToResult(s.dispatcher.Execute(ctx, resp)), nil
}

func (s *mcpServer) handleDisplayCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	cfg := s.app.cfg.Display
	width := intParam(params, "width", cfg.Width)
	height := intParam(params, "height", cfg.Height)
	dpi := intParam(params, "dpi", cfg.DPI)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	if !s.app.manager.Create(ctx, width, height, dpi) {
		return mcp.NewToolResultError("virtual display creation failed"), nil
	}
	id, _ := s.app.manager.ID()
	result := output.StepResult{OK: true, TS: time.Now().Unix(), Display: id}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleDisplayRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	s.app.manager.Remove(ctx)
	return s.stepResult(true, ""), nil
}

func (s *mcpServer) handleDisplayStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	status := output.DisplayStatus{Active: s.app.manager.Active(), TS: time.Now().Unix()}
	if status.Active {
		status.ID, _ = s.app.manager.ID()
		status.Width, status.Height, _ = s.app.manager.Size()
	}
	b, err := yaml.Marshal(status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleRemoteTouch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	phase := stringParam(params, "phase", "")
	x := intParam(params, "x", 0)
	y := intParam(params, "y", 0)

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	var ok bool
	switch phase {
	case "down":
		ok = s.bridge.TouchDown(ctx, x, y)
	case "move":
		ok = s.bridge.TouchMove(ctx, x, y)
	case "up":
		ok = s.bridge.TouchUp(ctx, x, y)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown phase %q (use down, move, up)", phase)), nil
	}
	return s.stepResult(ok, "touch forwarding failed (is a session active?)"), nil
}

func (s *mcpServer) handleRemoteFrame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()

	if !s.bridge.EnsureConnected(ctx) {
		return mcp.NewToolResultError("virtual display session could not be established"), nil
	}
	data, ok := s.bridge.RequestScreenshot(ctx, 0)
	if !ok {
		return mcp.NewToolResultError("frame capture failed"), nil
	}
	return pngResult(data), nil
}

func outcomeToResult(outcome dispatch.Outcome) *mcp.CallToolResult {
	b, err := yaml.Marshal(outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	if !outcome.OK {
		return mcp.NewToolResultError(string(b))
	}
	return mcp.NewToolResultText(string(b))
}

func pngResult(data []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: "image/png",
			},
		},
	}
}
