package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

type phaseRecorder struct {
	phases []sim.Phase
}

func (r *phaseRecorder) OnPhase(p sim.Phase, x dynamo.State) {
	r.phases = append(r.phases, p)
}

type stepRecorder struct {
	times []float64
	stats []sim.StepStats
}

func (r *stepRecorder) OnStep(x dynamo.State, stats sim.StepStats, t float64) {
	r.times = append(r.times, t)
	r.stats = append(r.stats, stats)
}

// forceProbe captures the force field as integration begins.
type forceProbe struct {
	forces []r2.Vec
}

func (f *forceProbe) OnPhase(p sim.Phase, x dynamo.State) {
	if p != sim.Integrate {
		return
	}
	f.forces = f.forces[:0]
	for i := range x {
		f.forces = append(f.forces, x[i].Force)
	}
}

func particle(id int, mass, x, y, vx, vy float64) dynamo.Particle {
	return dynamo.Particle{
		ID: id,
		Body: dynamo.Body{
			Mass:     mass,
			Location: r2.Vec{X: x, Y: y},
			Velocity: r2.Vec{X: vx, Y: vy},
		},
	}
}

func cluster() dynamo.State {
	return dynamo.State{
		particle(0, 5, 300, 300, 1, -2),
		particle(1, 12, 600, 350, -3, 0.5),
		particle(2, 8, 450, 700, 0, 4),
	}
}

var _ = Describe("Simulator", func() {
	var params dynamo.Params

	BeforeEach(func() {
		params = dynamo.DefaultParams()
	})

	Describe("Step", func() {
		It("walks the phases in fixed order and returns to idle", func() {
			s := sim.New(params, cluster())
			rec := &phaseRecorder{}
			s.AddPhaseObserver(rec)

			s.Step()
			s.Step()

			cycle := []sim.Phase{sim.ComputeForces, sim.Integrate, sim.ResolveCollisions, sim.ClampBoundaries, sim.Idle}
			Expect(rec.phases).To(Equal(append(append([]sim.Phase{}, cycle...), cycle...)))
			Expect(s.Phase()).To(Equal(sim.Idle))
		})

		It("integrates from fully accumulated forces", func() {
			s := sim.New(params, cluster())
			probe := &forceProbe{}
			s.AddPhaseObserver(probe)

			expected := cluster()
			physics.AccumulateForces(expected, params)

			s.Step()

			Expect(probe.forces).To(HaveLen(3))
			for i := range expected {
				Expect(probe.forces[i]).To(Equal(expected[i].Force))
			}
		})

		It("advances the clock by the fixed timestep", func() {
			s := sim.New(params, cluster())
			rec := &stepRecorder{}
			s.AddObserver(rec)

			for i := 0; i < 3; i++ {
				s.Step()
			}

			Expect(s.Steps()).To(Equal(3))
			Expect(s.Time()).To(BeNumerically("~", 3*params.Dt, 1e-12))
			Expect(rec.times).To(HaveLen(3))
			Expect(rec.times[0]).To(BeNumerically("~", params.Dt, 1e-12))
		})

		It("does nothing to an empty state", func() {
			s := sim.New(params, dynamo.State{})
			stats := s.Step()

			Expect(stats).To(Equal(sim.StepStats{}))
			Expect(s.State()).To(BeEmpty())
		})

		It("reports collisions and wall contacts", func() {
			x0 := dynamo.State{
				particle(0, 5, 100, 100, 0, 0),
				particle(1, 5, 106, 100, 0, 0),
				particle(2, 10, params.WallThickness+10, 500, -50, 0),
			}
			s := sim.New(params, x0)
			rec := &stepRecorder{}
			s.AddObserver(rec)

			stats := s.Step()

			Expect(stats.Collisions).To(Equal(1))
			Expect(stats.WallContacts).To(Equal(1))
			Expect(rec.stats).To(ConsistOf(stats))
			Expect(physics.Inside(s.State(), params)).To(BeTrue())
		})

		It("keeps the caller's initial state untouched", func() {
			x0 := cluster()
			s := sim.New(params, x0)
			s.Step()

			Expect(x0).To(Equal(cluster()))
			Expect(s.State()).NotTo(Equal(x0))
		})
	})

	Describe("Reset", func() {
		It("restores the initial particles and rewinds the clock", func() {
			s := sim.New(params, cluster())
			for i := 0; i < 10; i++ {
				s.Step()
			}

			s.Reset(cluster())

			Expect(s.State()).To(Equal(cluster()))
			Expect(s.Time()).To(BeZero())
			Expect(s.Steps()).To(BeZero())
		})
	})

	Describe("Run", func() {
		It("collects one sample per step plus the initial one", func() {
			s := sim.New(params, cluster())
			cfg := sim.Config{Steps: 60, SampleEvery: 1, ValidateState: true}

			result, err := s.Run(context.Background(), cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.StepsTaken).To(Equal(60))
			Expect(result.Times).To(HaveLen(61))
			Expect(result.Energies).To(HaveLen(61))
			Expect(result.Momenta).To(HaveLen(61))
			Expect(result.Times[60]).To(BeNumerically("~", 1.0, 1e-9))
			Expect(result.Errors).To(BeEmpty())
		})

		It("thins samples with SampleEvery", func() {
			s := sim.New(params, cluster())
			result, err := s.Run(context.Background(), sim.Config{Steps: 60, SampleEvery: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Times).To(HaveLen(7))
		})

		It("conserves momentum for a closed system away from the walls", func() {
			s := sim.New(params, cluster())
			result, err := s.Run(context.Background(), sim.Config{Steps: 30})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Collisions).To(BeZero())
			Expect(result.WallContacts).To(BeZero())
			for _, p := range result.Momenta {
				Expect(p).To(BeNumerically("~", result.Momenta[0], 1e-9))
			}
		})

		It("reports the default metrics", func() {
			s := sim.New(params, cluster())
			for _, m := range metrics.Defaults(params) {
				s.AddMetric(m)
			}

			result, err := s.Run(context.Background(), sim.Config{Steps: 30})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics).To(HaveKey("energy_drift"))
			Expect(result.Metrics).To(HaveKey("momentum_drift"))
			Expect(result.Metrics).To(HaveKeyWithValue("containment", 1.0))
			Expect(result.Metrics["momentum_drift"]).To(BeNumerically("<", 1e-9))
		})

		It("stops when the context is canceled", func() {
			s := sim.New(params, cluster())
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := s.Run(ctx, sim.Config{Steps: 100})

			Expect(err).To(MatchError(context.Canceled))
			Expect(result.StepsTaken).To(BeZero())
		})

		It("records an invalid state and stops", func() {
			x0 := cluster()
			x0[0].Velocity.X = math.Inf(1)
			s := sim.New(params, x0)

			result, err := s.Run(context.Background(), sim.Config{Steps: 10, ValidateState: true})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.StepsTaken).To(Equal(1))
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Errors[0]).To(MatchError(dynamo.ErrInvalidState))
		})

		DescribeTable("rejects invalid configuration",
			func(mutate func(*dynamo.Params), cfg sim.Config) {
				mutate(&params)
				s := sim.New(params, cluster())

				_, err := s.Run(context.Background(), cfg)
				Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			},
			Entry("negative steps", func(p *dynamo.Params) {}, sim.Config{Steps: -1}),
			Entry("zero dt", func(p *dynamo.Params) { p.Dt = 0 }, sim.Config{Steps: 10}),
			Entry("negative dt", func(p *dynamo.Params) { p.Dt = -0.1 }, sim.Config{Steps: 10}),
			Entry("zero floor", func(p *dynamo.Params) { p.MinDistSq = 0 }, sim.Config{Steps: 10}),
		)
	})

	Describe("RunWithCallback", func() {
		It("hands every frame to the callback until it declines", func() {
			s := sim.New(params, cluster())
			frames := 0

			err := s.RunWithCallback(context.Background(), 0, func(x dynamo.State, t float64) bool {
				frames++
				Expect(x).To(HaveLen(3))
				return frames < 5
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(Equal(5))
			Expect(s.Steps()).To(Equal(5))
		})

		It("stops after the requested number of steps", func() {
			s := sim.New(params, cluster())
			frames := 0

			err := s.RunWithCallback(context.Background(), 4, func(dynamo.State, float64) bool {
				frames++
				return true
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(Equal(4))
		})

		It("returns the context error", func() {
			s := sim.New(params, cluster())
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := s.RunWithCallback(ctx, 0, func(dynamo.State, float64) bool { return true })
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})

var _ = Describe("Phase", func() {
	It("has readable names", func() {
		Expect(sim.ComputeForces.String()).To(Equal("compute_forces"))
		Expect(sim.ClampBoundaries.String()).To(Equal("clamp_boundaries"))
		Expect(sim.Phase(99).String()).To(Equal("unknown"))
	})
})
