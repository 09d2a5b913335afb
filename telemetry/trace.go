package telemetry

import (
	"github.com/pthm-cable/perrito/agent"
)

// TraceRow is one sampled agent pose written to trace.csv.
type TraceRow struct {
	RunID     string  `csv:"run_id"`
	Frame     int32   `csv:"frame"`
	SimTime   float64 `csv:"sim_time"`
	AgentID   uint32  `csv:"agent"`
	State     string  `csv:"state"`
	StateTime float64 `csv:"state_time"`
	Clip      string  `csv:"clip"`
	X         float64 `csv:"x"`
	Z         float64 `csv:"z"`
	VX        float64 `csv:"vx"`
	VZ        float64 `csv:"vz"`
	TargetID  uint32  `csv:"target"`
}

// NewTraceRow samples a.
func NewTraceRow(frame int32, simTime float64, a *agent.Agent, targetID uint32) TraceRow {
	return TraceRow{
		Frame:     frame,
		SimTime:   simTime,
		AgentID:   a.ID,
		State:     a.State.String(),
		StateTime: a.StateTime,
		Clip:      a.Clip.Current(),
		X:         a.Position.X,
		Z:         a.Position.Z,
		VX:        a.Velocity.X,
		VZ:        a.Velocity.Z,
		TargetID:  targetID,
	}
}
