// Package rpc exposes entity controllers as named RPC methods.
//
// Every method takes one of the parameter envelopes below and returns a
// DataResult. Handlers for entities are generated into zz_generated_rpc.go.
package rpc

// ParamsForCreate carries the payload of a create call.
type ParamsForCreate[D any] struct {
	Data D `json:"data"`
}

// ParamsIded addresses a single entity.
type ParamsIded struct {
	ID string `json:"id" binding:"required"`
}

// ParamsList carries an optional filter. A nil filter matches everything.
type ParamsList[F any] struct {
	Filter *F `json:"filter"`
}

// ParamsForUpdate carries the id and payload of an update call.
type ParamsForUpdate[D any] struct {
	ID   string `json:"id"   binding:"required"`
	Data D      `json:"data"`
}

// DataResult wraps every successful result.
type DataResult[T any] struct {
	Data T `json:"data"`
}

// Data wraps v in a DataResult.
func Data[T any](v T) DataResult[T] {
	return DataResult[T]{Data: v}
}
