package domain

type PreferenceStatus string

const (
	PreferenceSelected PreferenceStatus = "selected"
	PreferenceLocked   PreferenceStatus = "locked"
	PreferenceAllotted PreferenceStatus = "allotted"
	PreferenceRejected PreferenceStatus = "rejected"
)

// MaxPreferences caps how many college choices one student may submit.
const MaxPreferences = 10

// CounselingPreference is one ranked college choice. The list locks
// atomically: once any entry is locked the whole list is frozen.
type CounselingPreference struct {
	CollegeID   string           `json:"college_id"`
	CollegeName string           `json:"college_name,omitempty"`
	Rank        int              `json:"rank"`
	Status      PreferenceStatus `json:"status"`
}

type CounselingType string

const (
	CounselingTypeJEE        CounselingType = "jee"
	CounselingTypeNEET       CounselingType = "neet"
	CounselingTypeState      CounselingType = "state"
	CounselingTypeManagement CounselingType = "management"
)

func (c CounselingType) IsValid() bool {
	switch c {
	case CounselingTypeJEE, CounselingTypeNEET, CounselingTypeState, CounselingTypeManagement:
		return true
	default:
		return false
	}
}
