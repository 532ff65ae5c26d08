package lumen

// debugLog prints a field's frame stats. Only called when Host.debug is true.
func (f *ParticleField) debugLog() {
	st := f.stats
	f.res.host.logf("%s: step: %v | render: %v | total: %v",
		f.name, st.StepTime, st.RenderTime, st.StepTime+st.RenderTime)
	f.res.host.logf("%s: particles: %d | pair checks: %d | lines: %d",
		f.name, st.Particles, st.PairChecks, st.Lines)
}

// debugMaxPopulation is where the all-pairs connection pass starts to cost
// more than a frame on modest hardware.
const debugMaxPopulation = 1000

// debugCheckPopulation warns when a reset spawns more particles than the
// connection pass handles comfortably.
func (f *ParticleField) debugCheckPopulation() {
	if n := len(f.particles); n > debugMaxPopulation {
		f.res.host.logf("warning: %s spawned %d particles (threshold %d); %d pair checks per frame",
			f.name, n, debugMaxPopulation, n*(n-1)/2)
	}
}
