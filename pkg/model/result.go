package model

// WriteResult reports the outcome of an update, upsert, or delete so
// handlers can return the store result the way the API always has.
type WriteResult struct {
	MatchedCount  int64  `json:"matchedCount,omitempty"`
	ModifiedCount int64  `json:"modifiedCount,omitempty"`
	UpsertedID    string `json:"upsertedId,omitempty"`
	DeletedCount  int64  `json:"deletedCount,omitempty"`
}
