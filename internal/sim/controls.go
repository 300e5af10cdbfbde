package sim

// Controls is one full set of pilot inputs. Collective is [0,1], the cyclic
// pair and yaw are [-1,1].
type Controls struct {
	Collective  float64
	CyclicPitch float64
	CyclicRoll  float64
	Yaw         float64
	EngineBoost bool
	AutoHover   bool
}

// ControlPatch is a partial control update; nil fields are left unchanged.
type ControlPatch struct {
	Collective  *float64
	CyclicPitch *float64
	CyclicRoll  *float64
	Yaw         *float64
	EngineBoost *bool
	AutoHover   *bool
}

// Float and Bool build pointer fields for a ControlPatch.
func Float(v float64) *float64 { return &v }
func Bool(v bool) *bool        { return &v }

// apply merges the patch into c, clamping each axis to its legal range so
// callers never have to pre-clamp.
func (c *Controls) apply(p ControlPatch) {
	if p.Collective != nil {
		c.Collective = Clamp(*p.Collective, 0, 1)
	}
	if p.CyclicPitch != nil {
		c.CyclicPitch = Clamp(*p.CyclicPitch, -1, 1)
	}
	if p.CyclicRoll != nil {
		c.CyclicRoll = Clamp(*p.CyclicRoll, -1, 1)
	}
	if p.Yaw != nil {
		c.Yaw = Clamp(*p.Yaw, -1, 1)
	}
	if p.EngineBoost != nil {
		c.EngineBoost = *p.EngineBoost
	}
	if p.AutoHover != nil {
		c.AutoHover = *p.AutoHover
	}
}

// approach blends each analog channel toward target with exponential
// convergence; switches copy over immediately.
func (c *Controls) approach(target Controls, rate, dt float64) {
	c.Collective = ExpApproach(c.Collective, target.Collective, rate, dt)
	c.CyclicPitch = ExpApproach(c.CyclicPitch, target.CyclicPitch, rate, dt)
	c.CyclicRoll = ExpApproach(c.CyclicRoll, target.CyclicRoll, rate, dt)
	c.Yaw = ExpApproach(c.Yaw, target.Yaw, rate, dt)
	c.EngineBoost = target.EngineBoost
	c.AutoHover = target.AutoHover
}
