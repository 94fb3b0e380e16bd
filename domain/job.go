package domain

// Job is a posting at jobs/{push}, created by alumni.
type Job struct {
	ID           string `json:"-"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Description  string `json:"description"`
	Requirements string `json:"requirements,omitempty"`
	Location     string `json:"location,omitempty"`
	Type         string `json:"type,omitempty"`
	PostedBy     string `json:"postedBy"`
	PostedAt     string `json:"postedAt"`
}

// JobApplication lives at jobApplications/{push}. One record per apply
// action; status starts at "pending" and is only changed by re-setting
// the whole record.
type JobApplication struct {
	ID          string `json:"-"`
	JobID       string `json:"jobId"`
	UserID      string `json:"userId"`
	CoverLetter string `json:"coverLetter"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

const ApplicationPending = "pending"
