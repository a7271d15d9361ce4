// Package entity declares the stored entities. The derived record types and
// controllers live in zz_generated_crud.go, written by internal/cmd/generate.
package entity

// Example is the demo entity served over RPC.
//
//docmodel:crud rpc
type Example struct {
	ID          *string       `json:"id"          bson:"_id"`
	Name        *string       `json:"name"        bson:"name"        crud:"required"`
	Description *string       `json:"description" bson:"description"`
	Age         *int32        `json:"age"         bson:"age"`
	Skills      []string      `json:"skills"      bson:"skills"`
	Owner       *ExampleOwner `json:"owner"       bson:"owner"`
}

// ExampleOwner is nested in Example. Filters reach its fields as owner.username
// and owner.mail.
type ExampleOwner struct {
	Username *string `json:"username" bson:"username"`
	Mail     *string `json:"mail"     bson:"mail"`
}
