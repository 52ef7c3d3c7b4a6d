package main

import (
	"flag"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/chasecam"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	layerWorld  = 0
	layerPlayer = 1
)

func init() {
	// glfw calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML rig config; defaults are used when empty")
	headless := flag.Bool("headless", false, "run without a window using a constant look input")
	frames := flag.Int("frames", 600, "frames to simulate in headless mode")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := chasecam.NewDefaultLogger("chasecam-demo", *debug)

	cfg := chasecam.DefaultConfig()
	if *configPath != "" {
		loaded, err := chasecam.LoadConfig(*configPath)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.IgnoreLayers |= chasecam.LayerBit(layerPlayer)

	scene := chasecam.NewScene()
	player := scene.NewNode("player", nil)
	nodes := scene.NewRigChain(player, mgl32.Vec3{0, 1.6, 0}, cfg.DefaultDepth)

	world := buildWorld()
	playerCollider := world.Add(chasecam.Collider{
		Shape:  chasecam.ShapeSphere,
		Radius: 0.5,
		Layer:  layerPlayer,
	})

	rig, err := chasecam.NewRig(cfg, nodes, world, chasecam.WithLogger(logger.Named("rig")))
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	var (
		window *glfw.Window
		look   chasecam.LookSource = chasecam.StaticLook{0.002, 0}
	)
	if !*headless {
		if err := glfw.Init(); err != nil {
			logger.Errorf("glfw init: %v", err)
			os.Exit(1)
		}
		defer glfw.Terminate()

		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
		window, err = glfw.CreateWindow(960, 540, "chasecam", nil, nil)
		if err != nil {
			logger.Errorf("create window: %v", err)
			os.Exit(1)
		}
		defer window.Destroy()

		src := chasecam.NewGLFWLookSource(window, 0.0005)
		src.SetCaptured(true)
		look = src
	}

	schedule := chasecam.NewSchedule(logger)
	if window != nil {
		schedule.UseSystem(chasecam.PreUpdate, func(*chasecam.Time) { glfw.PollEvents() })
	}
	schedule.UseSystem(chasecam.PreUpdate, orbitPlayer(player, world, playerCollider))
	schedule.UseModules(chasecam.RigModule{Rig: rig, Input: chasecam.NewInput(look)})
	schedule.UseSystem(chasecam.PostUpdate, reportEverySecond(rig, logger))

	if window == nil {
		for i := 0; i < *frames; i++ {
			schedule.Step(16 * time.Millisecond)
		}
		return
	}
	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}
		schedule.Tick(time.Now())
	}
}

// buildWorld lays out a ring of pillars the orbiting player passes behind.
func buildWorld() *chasecam.CollisionWorld {
	world := chasecam.NewCollisionWorld(2)
	world.Add(chasecam.Collider{
		Shape:       chasecam.ShapeBox,
		Center:      mgl32.Vec3{0, -0.5, 0},
		HalfExtents: mgl32.Vec3{200, 0.5, 200},
		Layer:       layerWorld,
	})
	for i := 0; i < 12; i++ {
		a := float64(i) * 2 * math.Pi / 12
		world.Add(chasecam.Collider{
			Shape:       chasecam.ShapeBox,
			Center:      mgl32.Vec3{float32(math.Cos(a)) * 14, 2, float32(math.Sin(a)) * 14},
			HalfExtents: mgl32.Vec3{0.75, 2, 0.75},
			Layer:       layerWorld,
		})
	}
	return world
}

func orbitPlayer(player *chasecam.Node, world *chasecam.CollisionWorld, collider chasecam.ColliderId) chasecam.SystemFunc {
	var elapsed float64
	return func(t *chasecam.Time) {
		elapsed += t.Dt.Seconds()
		a := elapsed * 0.4
		pos := mgl32.Vec3{float32(math.Cos(a)) * 10, 0, float32(math.Sin(a)) * 10}
		player.SetPosition(pos)
		world.Move(collider, pos.Add(mgl32.Vec3{0, 1, 0}))
	}
}

func reportEverySecond(rig *chasecam.Rig, logger chasecam.Logger) chasecam.SystemFunc {
	var acc time.Duration
	return func(t *chasecam.Time) {
		acc += t.Dt
		if acc < time.Second {
			return
		}
		acc -= time.Second
		cam := rig.Nodes().Camera.Position()
		logger.Infof("frame %d camera (%.2f, %.2f, %.2f) depth %.2f target %.2f yaw %.1f pitch %.1f obstructed %v",
			t.Frame, cam.X(), cam.Y(), cam.Z(), rig.CameraDepth(), rig.TargetDepth(), rig.Yaw(), rig.Pitch(), rig.Obstructed())
	}
}
