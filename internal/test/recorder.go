package test

import (
	"encoding/json"
	"net/http/httptest"
)

func NewJSONResponseRecorder[T any]() JSONResponseRecorder[T] {
	return JSONResponseRecorder[T]{
		ResponseRecorder: httptest.NewRecorder(),
	}
}

type JSONResponseRecorder[T any] struct {
	*httptest.ResponseRecorder
}

func (r JSONResponseRecorder[T]) Scan() (Result[T], error) {
	var result Result[T]
	err := json.NewDecoder(r.Body).Decode(&result)
	return result, err
}

func (r JSONResponseRecorder[T]) MustScan() Result[T] {
	res, err := r.Scan()
	if err != nil {
		panic(err)
	}
	return res
}
