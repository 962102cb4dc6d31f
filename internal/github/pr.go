// Package github wraps the gh CLI for pull-request queries.
//
// Like the git package, it shells out rather than talking to the API
// directly, so credentials and enterprise hosts are gh's problem, not ours.
// Everything here is read-only.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/raphi011/agentctl/internal/cmd"
)

// PRForBranch returns the PR number for a branch, or 0 if none exists.
func PRForBranch(ctx context.Context, dir, branch string) (int, error) {
	output, err := cmd.OutputContext(ctx, dir, "gh", "pr", "view", branch, "--json", "number")
	if err != nil {
		// gh exits non-zero when the branch has no PR; treat that as absent.
		if strings.Contains(err.Error(), "no pull requests found") {
			return 0, nil
		}
		return 0, fmt.Errorf("gh pr view failed: %v", err)
	}

	var result struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("failed to parse gh output: %w", err)
	}
	return result.Number, nil
}

// Comment is a normalized PR comment: either an issue comment on the PR
// conversation or a review comment anchored to a file location.
type Comment struct {
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
	Body      string `json:"body"`
	Type      string `json:"type"` // "comment" or "review_comment"
	Path      string `json:"path,omitempty"`
	Line      int    `json:"line,omitempty"`
	URL       string `json:"url,omitempty"`
}

// PRComments fetches issue and review comments for a PR, merged and sorted
// by creation time.
func PRComments(ctx context.Context, dir string, number int) ([]Comment, error) {
	issueOut, err := cmd.OutputContext(ctx, dir, "gh", "api",
		"repos/{owner}/{repo}/issues/"+strconv.Itoa(number)+"/comments")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR comments: %v", err)
	}

	reviewOut, err := cmd.OutputContext(ctx, dir, "gh", "api",
		"repos/{owner}/{repo}/pulls/"+strconv.Itoa(number)+"/comments")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review comments: %v", err)
	}

	issue, err := parseComments(issueOut, "comment")
	if err != nil {
		return nil, err
	}
	review, err := parseComments(reviewOut, "review_comment")
	if err != nil {
		return nil, err
	}

	return mergeByCreation(issue, review), nil
}

// parseComments decodes a GitHub comments API response.
// The created_at timestamps are RFC 3339, so string order is time order.
func parseComments(data []byte, commentType string) ([]Comment, error) {
	var raw []struct {
		User struct {
			Login string `json:"login"`
		} `json:"user"`
		CreatedAt string `json:"created_at"`
		Body      string `json:"body"`
		HTMLURL   string `json:"html_url"`
		Path      string `json:"path"`
		Line      int    `json:"line"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}

	comments := make([]Comment, 0, len(raw))
	for _, c := range raw {
		author := c.User.Login
		if author == "" {
			author = "unknown"
		}
		comments = append(comments, Comment{
			Author:    author,
			CreatedAt: c.CreatedAt,
			Body:      c.Body,
			Type:      commentType,
			Path:      c.Path,
			Line:      c.Line,
			URL:       c.HTMLURL,
		})
	}
	return comments, nil
}

// mergeByCreation merges two comment lists already ordered by creation time.
func mergeByCreation(a, b []Comment) []Comment {
	merged := make([]Comment, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].CreatedAt <= b[j].CreatedAt {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}
