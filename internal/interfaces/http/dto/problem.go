package dto

import (
	"github.com/gin-gonic/gin"
)

// ContentTypeProblem is the media type of error bodies
const ContentTypeProblem = "application/problem+json"

// ProblemTypePrefix prefixes the error code to form the problem type URI
const ProblemTypePrefix = "urn:livestock:error:"

// ProblemDetails is an RFC 7807 error body
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

// NewProblem builds problem details for an error code. The status is
// derived from the code.
func NewProblem(code, detail, instance string) ProblemDetails {
	return ProblemDetails{
		Type:     ProblemTypePrefix + code,
		Title:    code,
		Status:   GetHTTPStatus(code),
		Detail:   detail,
		Instance: instance,
	}
}

// Code returns the error code carried in the title
func (p ProblemDetails) Code() string {
	return p.Title
}

// WriteProblem writes problem details for code and aborts the handler chain
func WriteProblem(c *gin.Context, code, detail string) {
	problem := NewProblem(code, detail, c.Request.URL.Path)
	// gin keeps an explicitly set Content-Type when rendering JSON
	c.Header("Content-Type", ContentTypeProblem)
	c.AbortWithStatusJSON(problem.Status, problem)
}
