package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
	world "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/world"
)

func TestPlacementPicksSpikeHeight(t *testing.T) {
	// One 20 m spike inside the footprint, flat zero elsewhere.
	spike := sim.Vec3{X: 10.0 / 3.0} // on the first sampling ring
	terrain := &fakeTerrain{
		loaded: true,
		height: func(x, z float64) float64 {
			if sim.DistanceXZ(sim.Vec3{X: x, Z: z}, spike) < 1.5 {
				return 20
			}
			return 0
		},
	}
	r := world.NewLandingRegistry(terrain, nil, nil, nil)
	assert.Equal(t, 20.0, r.ComputePlacement(sim.Vec3{}, 10))
}

func TestPlacementFlatTerrain(t *testing.T) {
	r := world.NewLandingRegistry(flatTerrain(3.5), nil, nil, nil)
	assert.Equal(t, 3.5, r.ComputePlacement(sim.Vec3{X: 50, Z: -20}, 12))
}

func TestSiteCreationWaitsForTerrain(t *testing.T) {
	terrain := flatTerrain(5)
	terrain.loaded = false
	veg := &fakeVegetation{}
	coll := &fakeCollision{}
	r := world.NewLandingRegistry(terrain, veg, coll, nil)

	r.Request(world.SiteSpec{ID: "pad", Center: sim.Vec3{X: 1, Z: 2}, FootprintRadius: 10, SurfaceOffset: 0.5})

	for i := 0; i < 10; i++ {
		r.Update()
	}
	_, ok := r.Placement("pad")
	assert.False(t, ok, "site must not be created before terrain loads")

	terrain.loaded = true
	r.Update()

	site, ok := r.Placement("pad")
	require.True(t, ok)
	assert.Equal(t, 5.5, site.Position.Y, "max height plus surface offset")
	assert.Equal(t, 10.0, site.FootprintRadius)
	assert.Equal(t, 12.0, site.ClearanceRadius, "vegetation radius is footprint + 2")

	require.Len(t, veg.calls, 1)
	assert.Equal(t, site.Position, veg.calls[0].center)
	assert.Equal(t, 12.0, veg.calls[0].radius)
	require.Len(t, coll.calls, 1)
	assert.Equal(t, 10.0, coll.calls[0].radius)
}

func TestSiteCreationIsIdempotent(t *testing.T) {
	veg := &fakeVegetation{}
	r := world.NewLandingRegistry(flatTerrain(0), veg, nil, nil)

	spec := world.SiteSpec{ID: "pad", FootprintRadius: 8, SurfaceOffset: 1}
	r.Request(spec)
	r.Request(spec) // duplicate queue attempt
	for i := 0; i < 5; i++ {
		r.Update()
	}
	r.Request(spec) // re-request after creation

	assert.Len(t, r.All(), 1)
	assert.Len(t, veg.calls, 1, "vegetation cleared exactly once")
}

func TestSitePositionImmutable(t *testing.T) {
	terrain := flatTerrain(2)
	r := world.NewLandingRegistry(terrain, nil, nil, nil)
	r.Request(world.SiteSpec{ID: "pad", FootprintRadius: 8})
	r.Update()

	before, ok := r.Placement("pad")
	require.True(t, ok)

	// Terrain rising afterwards must not move the placed site.
	terrain.height = func(x, z float64) float64 { return 50 }
	r.Request(world.SiteSpec{ID: "pad", FootprintRadius: 8})
	r.Update()

	after, _ := r.Placement("pad")
	assert.Equal(t, before.Position, after.Position)
}

func TestSurfaceHeightAt(t *testing.T) {
	r := world.NewLandingRegistry(flatTerrain(4), nil, nil, nil)
	r.Request(world.SiteSpec{ID: "pad", Center: sim.Vec3{X: 100, Z: 100}, FootprintRadius: 10, SurfaceOffset: 0.5})
	r.Update()

	h, ok := r.SurfaceHeightAt(sim.Vec3{X: 103, Y: 30, Z: 100})
	require.True(t, ok)
	assert.Equal(t, 4.5, h)

	_, ok = r.SurfaceHeightAt(sim.Vec3{X: 150, Z: 100})
	assert.False(t, ok)
}
