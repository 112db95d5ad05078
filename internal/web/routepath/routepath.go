// Package routepath stores canonical HTTP paths for web pages.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                     = "/"
	Signup                   = "/signup"
	Login                    = "/login"
	Logout                   = "/logout"
	Health                   = "/up"
	Dashboard                = "/dashboard"
	CommitmentsNew           = "/commitments/new"
	CommitmentsPrefix        = "/commitments/"
	CommitmentResolvePattern = CommitmentsPrefix + "{commitmentID}/resolve"
	StaticPrefix             = "/static/"
)

// CommitmentResolve returns the resolve route for one commitment.
func CommitmentResolve(commitmentID string) string {
	return CommitmentsPrefix + escapeSegment(commitmentID) + "/resolve"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
