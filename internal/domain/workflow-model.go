package domain

type WorkflowStage string

const (
	StageInquiry      WorkflowStage = "inquiry"
	StageApplication  WorkflowStage = "application"
	StageDocuments    WorkflowStage = "documents"
	StageVerification WorkflowStage = "verification"
	StageCounseling   WorkflowStage = "counseling"
	StagePayment      WorkflowStage = "payment"
	StageAllotment    WorkflowStage = "allotment"
	StageEnrollment   WorkflowStage = "enrollment"
)

// WorkflowStages is the full admission pipeline in order. A student only ever
// moves forward through it, one stage at a time.
var WorkflowStages = []WorkflowStage{
	StageInquiry,
	StageApplication,
	StageDocuments,
	StageVerification,
	StageCounseling,
	StagePayment,
	StageAllotment,
	StageEnrollment,
}

func (w WorkflowStage) IsValid() bool {
	return w.Ordinal() >= 0
}

// Ordinal returns the stage's position in the pipeline, or -1 for an unknown
// stage.
func (w WorkflowStage) Ordinal() int {
	for i, s := range WorkflowStages {
		if s == w {
			return i
		}
	}
	return -1
}

func (w WorkflowStage) IsTerminal() bool {
	return w == StageEnrollment
}

// NextStage returns the stage that follows w. The second return is false when
// w is terminal or unknown.
func NextStage(w WorkflowStage) (WorkflowStage, bool) {
	i := w.Ordinal()
	if i < 0 || i >= len(WorkflowStages)-1 {
		return "", false
	}
	return WorkflowStages[i+1], true
}
