package domain

// DomainMessage is one entry of a public topic log under
// domainChats/{domain}/{push}. There is no read state; every
// subscriber always sees the full history.
type DomainMessage struct {
	ID         string `json:"-"`
	Content    string `json:"content"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Timestamp  string `json:"timestamp"`
}

// DomainTopic is a fixed broadcast topic.
type DomainTopic struct {
	ID   string
	Name string
}

// Topics is the catalog of broadcast channels. The set is fixed;
// membership is open to any signed-in user.
var Topics = []DomainTopic{
	{ID: "ai", Name: "AI & Machine Learning"},
	{ID: "web", Name: "Web Development"},
	{ID: "data", Name: "Data Science"},
	{ID: "cloud", Name: "Cloud Computing"},
	{ID: "systems", Name: "Systems Design"},
}

// KnownTopic reports whether id names a catalog topic.
func KnownTopic(id string) bool {
	for _, t := range Topics {
		if t.ID == id {
			return true
		}
	}
	return false
}
