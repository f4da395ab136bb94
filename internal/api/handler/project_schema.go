package handler

// errorResponse documents the error envelope rendered by the central
// HTTP error handler.
type errorResponse struct {
	Message string `json:"message"`
}

// messageResponse is the envelope for operations that only report an outcome.
type messageResponse struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted,omitempty"`
}

type featureRequest struct {
	Name      string `json:"name" validate:"required"`
	Completed bool   `json:"completed"`
}

type submitProjectRequest struct {
	Title       string           `json:"title"       validate:"required"`
	Description string           `json:"description" validate:"required"`
	Features    []featureRequest `json:"features"    validate:"dive"`
}

// updateProjectRequest is a partial update: nil fields stay untouched, a
// non-nil Features replaces the whole sequence.
type updateProjectRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Features    []featureRequest `json:"features" validate:"omitempty,dive"`
}

type approveProjectRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
	Marks    *int   `json:"marks"`
}

type submitFinalRequest struct {
	FinalLink string `json:"final_link" validate:"required"`
}

type toggleFeatureRequest struct {
	Completed bool `json:"completed"`
}
