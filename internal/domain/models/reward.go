package models

// Reward — факт вознаграждения: кто отправил (SenderID) и за какую статью (DataID)
type Reward struct {
	ID       int64
	SenderID int64
	DataID   int64
}
