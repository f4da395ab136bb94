package handler

import (
	"github.com/campusworks/project-portal/internal/core/ports"
)

func toFeatureInputs(features []featureRequest) []ports.FeatureInput {
	if features == nil {
		return nil
	}
	out := make([]ports.FeatureInput, len(features))
	for i, f := range features {
		out[i] = ports.FeatureInput{Name: f.Name, Completed: f.Completed}
	}
	return out
}

func toSubmitInput(req submitProjectRequest, studentID string) ports.SubmitProjectInput {
	return ports.SubmitProjectInput{
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		Features:    toFeatureInputs(req.Features),
	}
}

func toUpdateInput(req updateProjectRequest, projectID, actorID string) ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		ProjectID:   projectID,
		ActorID:     actorID,
		Title:       req.Title,
		Description: req.Description,
		Features:    toFeatureInputs(req.Features),
	}
}
