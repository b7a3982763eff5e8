// Package routes defines the backend endpoint paths used by the client.
package routes

// API Routes
const (
	// Collection: GET lists, POST creates. The trailing slash matches the backend.
	Messages = "/messages/"

	// Single message: PUT updates, DELETE removes.
	Message = "/messages/{id}"

	// Path parameter used in Message.
	ParamID = "id"
)
