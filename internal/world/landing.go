package world

import (
	"math"

	"go.uber.org/zap"

	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
)

// vegetationMargin is added to a site's footprint radius when requesting
// vegetation clearance.
const vegetationMargin = 2.0

// Site is a placed, collision-registered flat surface. Its position is
// immutable once created.
type Site struct {
	ID              string
	Position        sim.Vec3
	FootprintRadius float64
	ClearanceRadius float64
}

// SiteSpec describes a site to be created once its terrain is ready.
type SiteSpec struct {
	ID              string
	Center          sim.Vec3 // X/Z target coordinate; Y is ignored
	FootprintRadius float64
	SurfaceOffset   float64 // fixed clearance above the sampled maximum
}

// LandingRegistry places fixed-footprint structures on uneven terrain and
// keeps them addressable by id. Creation is gated on terrain readiness and
// happens at most once per id.
type LandingRegistry struct {
	log     *zap.Logger
	terrain TerrainProvider
	veg     VegetationClearer  // optional
	coll    CollisionRegistrar // optional

	baseRingSamples int

	pending []SiteSpec
	sites   map[string]Site
}

// NewLandingRegistry wires the registry to its collaborators. veg and coll
// may be nil; the corresponding side effects are skipped.
func NewLandingRegistry(terrain TerrainProvider, veg VegetationClearer, coll CollisionRegistrar, log *zap.Logger) *LandingRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &LandingRegistry{
		log:             log,
		terrain:         terrain,
		veg:             veg,
		coll:            coll,
		baseRingSamples: 8,
		sites:           make(map[string]Site),
	}
}

// Request queues a site for creation. The site is created by a later
// Update tick once the terrain under it reports loaded. Requesting an id
// that already exists or is already queued is a no-op.
func (r *LandingRegistry) Request(spec SiteSpec) {
	if _, ok := r.sites[spec.ID]; ok {
		return
	}
	for _, p := range r.pending {
		if p.ID == spec.ID {
			return
		}
	}
	r.pending = append(r.pending, spec)
}

// Update runs the per-tick readiness poll: each pending site is created
// exactly once when its terrain is ready, and deferred otherwise. Cheap
// and non-blocking.
func (r *LandingRegistry) Update() {
	if len(r.pending) == 0 {
		return
	}
	if r.terrain == nil {
		r.log.Warn("landing registry has no terrain provider, deferring site creation")
		return
	}

	remaining := r.pending[:0]
	for _, spec := range r.pending {
		if !r.ready(spec.Center) {
			remaining = append(remaining, spec)
			continue
		}
		r.create(spec)
	}
	r.pending = remaining
}

// ready checks that the terrain at the target coordinate is plausible and
// the owning region reports loaded.
func (r *LandingRegistry) ready(center sim.Vec3) bool {
	h := r.terrain.HeightAt(center.X, center.Z)
	return HeightLoaded(h) && r.terrain.IsChunkLoadedAt(center)
}

func (r *LandingRegistry) create(spec SiteSpec) {
	if _, ok := r.sites[spec.ID]; ok {
		return
	}

	maxHeight := r.ComputePlacement(spec.Center, spec.FootprintRadius)
	site := Site{
		ID: spec.ID,
		Position: sim.Vec3{
			X: spec.Center.X,
			Y: maxHeight + spec.SurfaceOffset,
			Z: spec.Center.Z,
		},
		FootprintRadius: spec.FootprintRadius,
		ClearanceRadius: spec.FootprintRadius + vegetationMargin,
	}
	r.sites[site.ID] = site

	if r.coll != nil {
		r.coll.RegisterFootprint(site.Position, site.FootprintRadius)
	}
	if r.veg != nil {
		r.veg.ClearVegetation(site.Position, site.ClearanceRadius)
	}

	r.log.Info("landing site placed",
		zap.String("site", site.ID),
		zap.Float64("surfaceHeight", site.Position.Y))
}

// ComputePlacement samples terrain at the center, over three concentric
// rings (ring i carries i times the base sample count) and along two
// orthogonal diameters, and returns the maximum sampled height. The
// maximum guarantees the placed surface cannot intersect terrain anywhere
// under the footprint; it may float slightly above lower terrain.
func (r *LandingRegistry) ComputePlacement(center sim.Vec3, searchRadius float64) float64 {
	maxHeight := r.terrain.HeightAt(center.X, center.Z)

	sample := func(x, z float64) {
		h := r.terrain.HeightAt(x, z)
		if HeightLoaded(h) && h > maxHeight {
			maxHeight = h
		}
	}

	for ring := 1; ring <= 3; ring++ {
		radius := searchRadius * float64(ring) / 3.0
		count := r.baseRingSamples * ring
		for i := 0; i < count; i++ {
			angle := 2 * math.Pi * float64(i) / float64(count)
			sample(center.X+radius*math.Cos(angle), center.Z+radius*math.Sin(angle))
		}
	}

	// Two orthogonal diameters catch narrow features the rings straddle.
	steps := r.baseRingSamples
	for i := -steps; i <= steps; i++ {
		offset := searchRadius * float64(i) / float64(steps)
		sample(center.X+offset, center.Z)
		sample(center.X, center.Z+offset)
	}

	return maxHeight
}

// Placement returns the site with the given id.
func (r *LandingRegistry) Placement(id string) (Site, bool) {
	s, ok := r.sites[id]
	return s, ok
}

// All returns a snapshot of every created site.
func (r *LandingRegistry) All() []Site {
	out := make([]Site, 0, len(r.sites))
	for _, s := range r.sites {
		out = append(out, s)
	}
	return out
}

// SurfaceHeightAt returns the surface height of the site covering the
// given position, if any. Used by vehicles as a ground-height override
// while over a pad.
func (r *LandingRegistry) SurfaceHeightAt(p sim.Vec3) (float64, bool) {
	for _, s := range r.sites {
		if sim.DistanceXZ(p, s.Position) <= s.FootprintRadius {
			return s.Position.Y, true
		}
	}
	return 0, false
}
