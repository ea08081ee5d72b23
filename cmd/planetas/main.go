// planetas - Procedural Planet Viewer
// Orbit noise-shaded planets, ring systems and moons in your terminal.
//
// Controls:
//
//	Mouse drag   - Orbit camera (yaw/pitch)
//	Scroll       - Zoom in/out
//	W/S          - Orbit up/down
//	A/D          - Orbit left/right
//	Shift+arrows - Pan the view
//	1-4          - Choose planet (rocky, gas giant, crystal, lava)
//	Tab          - Next planet
//	Space        - Random spin
//	R            - Reset view
//	X            - Toggle wireframe mode (x-ray)
//	O            - Toggle orbit guides
//	P            - Save a PNG snapshot
//	?            - Toggle HUD overlay (FPS, planet info, triangle stats)
//	Esc          - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/models"
	"github.com/jruiz002/planetas/pkg/planet"
	"github.com/jruiz002/planetas/pkg/render"
	"github.com/jruiz002/planetas/pkg/shader"
)

var (
	startPlanet = flag.String("planet", "rocky", "Starting planet (rocky, gas, crystal, lava)")
	meshPath    = flag.String("mesh", "", "Optional OBJ/GLB mesh to use as the planet body")
	detail      = flag.Int("detail", 32, "Sphere detail (latitude ring count)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "5,5,15", "Background color (R,G,B)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "planetas - Procedural Planet Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: planetas [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag   - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll       - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D      - Orbit with keys\n")
		fmt.Fprintf(os.Stderr, "  Shift+arrows - Pan the view\n")
		fmt.Fprintf(os.Stderr, "  1-4, Tab     - Choose planet\n")
		fmt.Fprintf(os.Stderr, "  Space        - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R            - Reset view\n")
		fmt.Fprintf(os.Stderr, "  X            - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  O            - Toggle orbit guides\n")
		fmt.Fprintf(os.Stderr, "  P            - Save PNG snapshot\n")
		fmt.Fprintf(os.Stderr, "  ?            - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc          - Quit\n")
	}
	flag.Parse()

	start, err := parseVariant(*startPlanet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := run(start); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseVariant(name string) (planet.Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rocky":
		return planet.Rocky, nil
	case "gas", "gasgiant", "gas-giant":
		return planet.GasGiant, nil
	case "crystal":
		return planet.Crystal, nil
	case "lava":
		return planet.Lava, nil
	}
	return planet.Rocky, fmt.Errorf("unknown planet %q (want rocky, gas, crystal or lava)", name)
}

// OrbitAxis tracks angular velocity for one camera orbit axis with spring decay
type OrbitAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewOrbitAxis creates an axis with a harmonica spring for smooth velocity decay
func NewOrbitAxis(fps int) OrbitAxis {
	return OrbitAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update returns the angle step for this frame and decays velocity toward 0
func (a *OrbitAxis) Update() float64 {
	step := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return step
}

// OrbitState drives the camera orbit with harmonica spring physics
type OrbitState struct {
	Yaw, Pitch OrbitAxis
	fps        int
}

func NewOrbitState(fps int) *OrbitState {
	return &OrbitState{
		Yaw:   NewOrbitAxis(fps),
		Pitch: NewOrbitAxis(fps),
		fps:   fps,
	}
}

// Update steps both axes and reports how far to rotate the camera this frame
func (o *OrbitState) Update() (dYaw, dPitch float64) {
	return o.Yaw.Update(), o.Pitch.Update()
}

func (o *OrbitState) ApplyImpulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

func (o *OrbitState) Reset() {
	o.Yaw = NewOrbitAxis(o.fps)
	o.Pitch = NewOrbitAxis(o.fps)
}

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	Wireframe  bool // Draw meshes as wireframe instead of shaded
	ShowOrbits bool // Draw world axes and the moon orbit guide
	ShowHUD    bool // Whether to show the HUD overlay
}

// NewViewState creates default view state
func NewViewState() *ViewState {
	return &ViewState{ShowHUD: true}
}

// HUD renders an overlay with planet info and render stats
type HUD struct {
	name      string
	features  string
	accent    string
	polyCount int
	note      string
	noteTime  time.Time
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(world *planet.Planet) *HUD {
	h := &HUD{fpsTime: time.Now()}
	h.SetWorld(world)
	return h
}

// SetWorld points the HUD at a new planet
func (h *HUD) SetWorld(world *planet.Planet) {
	cfg := world.Config()
	h.name = cfg.Name
	h.features = strings.Join(cfg.Features, ", ")
	h.accent = accentANSI(cfg.Accent)
	h.polyCount = world.TriangleCount()
}

// Note shows a transient message on the bottom row
func (h *HUD) Note(msg string) {
	h.note = msg
	h.noteTime = time.Now()
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// accentANSI turns a planet accent color into a truecolor escape.
// Lightness is lifted in HCL space so dark palettes stay readable
// against the black HUD rows.
func accentANSI(c shader.Color) string {
	hue, chroma, lum := colorful.Color{R: c.R, G: c.G, B: c.B}.Hcl()
	r, g, b := colorful.Hcl(hue, chroma, math.Min(1, lum*1.2+0.15)).Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, view *ViewState, stats render.CullingStats) {
	// ANSI escape codes for positioning and styling
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	// Helper to position cursor
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	// A fresh note takes over the bottom row
	if h.note != "" && time.Since(h.noteTime) < 2*time.Second {
		noteCol := max((width-len(h.note)-2)/2, 1)
		fmt.Print(moveTo(height, noteCol) + bgBlack + bold + fgYellow + " " + h.note + " " + reset)
		if !view.ShowHUD {
			return
		}
	}

	// If HUD is disabled, we're done (lines already cleared)
	if !view.ShowHUD {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: planet name in its accent color
	titleCol := max((width-len(h.name)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + bold + bgBlack + h.accent + " " + h.name + " " + reset)

	// Top right: triangles drawn vs submitted
	triStr := fmt.Sprintf(" %d/%d tris ", stats.TrianglesDrawn, stats.TrianglesIn)
	triCol := max(width-len(triStr), 1)
	fmt.Print(moveTo(1, triCol) + bgBlack + fgCyan + triStr + reset)

	// Bottom: mode checkboxes
	checkWire := "[ ]"
	if view.Wireframe {
		checkWire = "[✓]"
	}
	checkOrbits := "[ ]"
	if view.ShowOrbits {
		checkOrbits = "[✓]"
	}
	modeStr := fmt.Sprintf("%s%s %s X-Ray  %s Orbits %s", bgBlack, fgWhite, checkWire, checkOrbits, reset)
	fmt.Print(moveTo(height, 1) + modeStr)

	// Bottom middle: surface features
	if h.features != "" {
		featCol := max((width-len(h.features)-2)/2, 1)
		fmt.Print(moveTo(height, featCol) + bgBlack + dim + h.accent + " " + h.features + " " + reset)
	}

	// Planet picker hint (right side of bottom)
	hint := fmt.Sprintf("%s%s 1-4: planets %s", bgBlack, dim, reset)
	hintCol := max(width-15, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}

// bodyMesh returns the unit sphere every planet deforms, or the model
// named by -mesh centered and scaled into the same space.
func bodyMesh() (*models.Mesh, error) {
	if *meshPath == "" {
		rings := max(*detail, 8)
		return models.NewUVSphere(rings, rings*3/2, 1), nil
	}

	var mesh *models.Mesh
	var err error
	switch ext := strings.ToLower(filepath.Ext(*meshPath)); ext {
	case ".glb", ".gltf":
		mesh, err = models.LoadGLB(*meshPath)
	case ".obj":
		mesh, err = models.LoadOBJ(*meshPath)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}

	// Center and scale to roughly unit radius so the shaders see the
	// same coordinate range as the sphere
	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		transform := math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Scale(-1)))
		mesh.Transform(transform)
	}
	return mesh, nil
}

func run(start planet.Variant) error {
	// Parse background color
	var bgR, bgG, bgB uint8 = 5, 5, 15
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	// Build the shared body mesh and the starting planet
	sphere, err := bodyMesh()
	if err != nil {
		return err
	}
	world := planet.Build(start, sphere)

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	// Create renderer
	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	// Create camera
	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

	rasterizer := render.NewRasterizer(camera, fb)
	wire := render.NewWireframe(camera, fb)

	// Create HUD and input state
	hud := NewHUD(world)
	orbit := NewOrbitState(*targetFPS)
	view := NewViewState()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ yaw, pitch float64 }{}
	const torqueStrength = 2.0
	const panStep = 0.15

	// Mouse state
	var mouseDown bool
	var lastMouseX, lastMouseY int
	var wantSnapshot bool

	setWorld := func(v planet.Variant) {
		world = planet.Build(v, sphere)
		hud.SetWorld(world)
	}

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				rasterizer = render.NewRasterizer(camera, fb)
				wire = render.NewWireframe(camera, fb)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("1"):
					setWorld(planet.Rocky)
				case ev.MatchString("2"):
					setWorld(planet.GasGiant)
				case ev.MatchString("3"):
					setWorld(planet.Crystal)
				case ev.MatchString("4"):
					setWorld(planet.Lava)
				case ev.MatchString("tab"):
					setWorld(planet.Variant((int(world.Variant()) + 1) % planet.VariantCount))
				case ev.MatchString("r"):
					orbit.Reset()
					camera.Reset()
				case ev.MatchString("w", "up"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("shift+up"):
					camera.Pan(0, panStep)
				case ev.MatchString("shift+down"):
					camera.Pan(0, -panStep)
				case ev.MatchString("shift+left"):
					camera.Pan(-panStep, 0)
				case ev.MatchString("shift+right"):
					camera.Pan(panStep, 0)
				case ev.MatchString("space"):
					orbit.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*0.8,
					)
				case ev.MatchString("+", "="):
					camera.Zoom(-0.5)
				case ev.MatchString("-", "_"):
					camera.Zoom(0.5)
				case ev.MatchString("x"):
					view.Wireframe = !view.Wireframe
				case ev.MatchString("o"):
					view.ShowOrbits = !view.ShowOrbits
				case ev.MatchString("p"):
					wantSnapshot = true
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.ShowHUD = !view.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.ApplyImpulse(float64(dx)*0.03, float64(dy)*0.03)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					camera.Zoom(-0.5)
				case uv.MouseWheelDown:
					camera.Zoom(0.5)
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()
	simTime := 0.0

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}
		simTime += dt

		// Apply input torque and decay it (key release events unreliable)
		orbit.ApplyImpulse(inputTorque.yaw*dt, inputTorque.pitch*dt)
		inputTorque.yaw *= 0.9
		inputTorque.pitch *= 0.9

		// Update springs (harmonica handles timing internally)
		camera.Rotate(orbit.Update())

		// Render
		fb.Clear(render.RGB(bgR, bgG, bgB))
		rasterizer.ClearDepth()
		rasterizer.InvalidateFrustum()
		rasterizer.ResetCullingStats()

		uniforms := shader.NewUniforms()
		uniforms.Time = simTime
		uniforms.CameraPos = camera.Position()

		// Draw passes in order: body, then rings, then moon
		for _, pass := range world.Passes(simTime) {
			for _, op := range pass.Ops {
				if op.Bound != nil && !rasterizer.IsSphereVisible(op.Bound.Center, op.Bound.Radius) {
					continue
				}
				if view.Wireframe {
					if op.Bound != nil {
						wire.DrawPoint(op.Bound.Center, op.Bound.Radius, render.RGB(200, 200, 200))
					} else {
						rasterizer.DrawMeshWireframe(op.Mesh, op.Model, render.RGB(0, 255, 128))
					}
					continue
				}
				rasterizer.DisableBackfaceCulling = op.TwoSided
				rasterizer.DrawMeshShadedOpt(op.Mesh, op.Model, op.Shader, uniforms)
			}
		}
		rasterizer.DisableBackfaceCulling = false

		// Orbit guides
		if view.ShowOrbits {
			wire.DrawAxes(1.6)
			if world.Config().HasMoon {
				wire.DrawCircle(math3d.Zero3(), shader.MoonOrbitRadius, 64, render.RGBA(110, 110, 140, 255))
				wire.DrawPoint(shader.MoonOrbitCenter(simTime), 0.2, render.ColorWhite)
			}
		}

		// Snapshot before the frame hits the terminal so the file
		// matches what is on screen
		if wantSnapshot {
			wantSnapshot = false
			name := fmt.Sprintf("planetas-%d.png", time.Now().Unix())
			if err := fb.SavePNG(name); err != nil {
				hud.Note("snapshot failed")
			} else {
				hud.Note("saved " + name)
			}
		}

		// Display
		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		hud.UpdateFPS()
		hud.Render(width, height, view, rasterizer.CullingStats)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
