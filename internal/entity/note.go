package entity

// Note is a short text stamped with the id of the user that created it.
//
//docmodel:crud owner rpc
type Note struct {
	ID      *string  `json:"id"       bson:"_id"`
	Title   *string  `json:"title"    bson:"title"    crud:"required"`
	Body    *string  `json:"body"     bson:"body"`
	Tags    []string `json:"tags"     bson:"tags"`
	OwnerID *string  `json:"owner_id" bson:"owner_id" crud:"skip_create,skip_update"`
}
