package driver

// Stage identifies a pipeline phase for progress reporting.
type Stage uint8

const (
	StageLoad Stage = iota
	StageGate
	StageScan
	StageValidate
	StageEmit
)

// Status is the state of a stage or package within it.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification. Pkg is empty for run-level phase
// transitions and set for per-package scan events.
type Event struct {
	Pkg    string
	Stage  Stage
	Status Status
}

// notify sends ev when the run has an event sink attached. The channel is
// owned by the caller of Run, which closes it after Run returns.
func (o *Options) notify(ev Event) {
	if o.Events != nil {
		o.Events <- ev
	}
}
