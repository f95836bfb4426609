package dto

// CreateCycleRequest is the payload for creating a cycle. The new cycle
// becomes the active one.
type CreateCycleRequest struct {
	Name string `json:"name" binding:"required"`
}
