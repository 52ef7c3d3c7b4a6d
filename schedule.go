package chasecam

import (
	"fmt"
	"slices"
	"time"
)

type Stage struct {
	Name string
}

var (
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
)

type SystemFunc func(t *Time)

// Module bundles systems that are installed together.
type Module interface {
	Install(s *Schedule)
}

// Schedule is a minimal host loop: each tick advances the clock and runs every
// stage in order, and within a stage every system in registration order.
type Schedule struct {
	stages  []Stage
	systems map[string][]SystemFunc
	clock   Time
	logger  Logger
}

func NewSchedule(logger Logger) *Schedule {
	s := &Schedule{
		systems: make(map[string][]SystemFunc),
		logger:  orNop(logger),
	}
	for _, stage := range []Stage{PreUpdate, Update, PostUpdate} {
		s.stages = append(s.stages, stage)
		s.systems[stage.Name] = nil
	}
	return s
}

type stagePosition int

const (
	stageBefore stagePosition = iota
	stageAfter
)

type stagePositionBuilder struct {
	position stagePosition
	target   Stage
}

func BeforeStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageBefore, target: s}
}

func AfterStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageAfter, target: s}
}

func (s *Schedule) UseStage(stage Stage, where stagePositionBuilder) *Schedule {
	if _, ok := s.systems[stage.Name]; ok {
		panic(fmt.Sprintf("Stage %v already exists", stage.Name))
	}
	idx := slices.IndexFunc(s.stages, func(st Stage) bool { return st.Name == where.target.Name })
	if idx == -1 {
		panic(fmt.Sprintf("Stage %v not found", where.target.Name))
	}
	if where.position == stageAfter {
		idx++
	}
	s.stages = slices.Insert(s.stages, idx, stage)
	s.systems[stage.Name] = nil
	return s
}

func (s *Schedule) UseSystem(stage Stage, system SystemFunc) *Schedule {
	if _, ok := s.systems[stage.Name]; !ok {
		panic(fmt.Sprintf("Stage %v doesn't exist", stage.Name))
	}
	s.systems[stage.Name] = append(s.systems[stage.Name], system)
	return s
}

func (s *Schedule) UseModules(modules ...Module) *Schedule {
	for _, m := range modules {
		m.Install(s)
	}
	return s
}

// Tick advances the clock to now and runs one frame.
func (s *Schedule) Tick(now time.Time) {
	s.clock.advance(now)
	s.run()
}

// Step advances the clock by a fixed dt and runs one frame.
func (s *Schedule) Step(dt time.Duration) {
	s.clock.step(dt)
	s.run()
}

func (s *Schedule) run() {
	for _, stage := range s.stages {
		for _, system := range s.systems[stage.Name] {
			system(&s.clock)
		}
	}
}

func (s *Schedule) Stages() []Stage { return slices.Clone(s.stages) }
func (s *Schedule) Time() *Time     { return &s.clock }
func (s *Schedule) Logger() Logger  { return s.logger }
