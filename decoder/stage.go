package decoder

// Stage is a step of a single Process run. Stages advance linearly; any
// failure moves the processor to StageFailed.
type Stage int

const (
	StageIdle Stage = iota
	StageValidating
	StageReading
	StageParsing
	StageResolvingColumns
	StageTransforming
	StageWriting
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageIdle:             "idle",
	StageValidating:       "validating",
	StageReading:          "reading",
	StageParsing:          "parsing",
	StageResolvingColumns: "resolving columns",
	StageTransforming:     "transforming",
	StageWriting:          "writing",
	StageDone:             "done",
	StageFailed:           "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
