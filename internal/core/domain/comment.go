package domain

type Comment struct {
	ID        string    `json:"id"`
	TeamColor TeamColor `json:"teamColor"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	Timestamp int64     `json:"timestamp"`
}
