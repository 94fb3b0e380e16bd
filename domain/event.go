package domain

// CampusEvent is an announcement at events/{push}.
type CampusEvent struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	MeetLink    string `json:"meetLink,omitempty"`
	BannerURL   string `json:"bannerUrl,omitempty"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
}
