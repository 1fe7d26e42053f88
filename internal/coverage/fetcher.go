// Package coverage implements the implementation-coverage workflow:
// fetching the requirement set for a topic, scoring it against an
// implementation reference map, and generating recommendations.
package coverage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atoms-tech/polarion-mcp/internal/logging"
	"github.com/atoms-tech/polarion-mcp/internal/polarion"
)

// fetchPageSize is the generous page limit used for every topic query.
const fetchPageSize = 50

// WorkItemSource is the slice of the Polarion client the fetcher needs.
type WorkItemSource interface {
	WorkItems(ctx context.Context, projectID string, limit int, query string) ([]polarion.WorkItem, error)
}

// RequirementSet is the deduplicated result of a topic fetch. It is
// built fresh on every call and never cached.
type RequirementSet struct {
	Topic        string              `json:"topic"`
	ProjectID    string              `json:"project_id"`
	Requirements []polarion.WorkItem `json:"requirements"`
	FetchedAt    time.Time           `json:"fetched_at"`
}

// Fetcher approximates full-text topic search by running several
// broadened queries and merging their results.
type Fetcher struct {
	source WorkItemSource
	logger *logging.AppLogger
}

// NewFetcher creates a Fetcher over the given work item source.
func NewFetcher(source WorkItemSource, logger *logging.AppLogger) *Fetcher {
	return &Fetcher{source: source, logger: logger}
}

// topicQueries returns the query sequence, most to least specific.
func topicQueries(topic string) []string {
	return []string{
		topic + " AND type:requirement",
		"title:" + topic,
		topic,
	}
}

// Fetch runs the broadened queries sequentially and merges their
// results by identifier, keeping the first occurrence.
//
// A failed query contributes nothing rather than aborting the fetch —
// except credential failures, which would repeat identically on every
// remaining query and so abort the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context, projectID, topic string) (*RequirementSet, error) {
	var merged []polarion.WorkItem
	seen := make(map[string]bool)

	for _, query := range topicQueries(topic) {
		items, err := f.source.WorkItems(ctx, projectID, fetchPageSize, query)
		if err != nil {
			if errors.Is(err, polarion.ErrUnauthenticated) || errors.Is(err, polarion.ErrForbidden) {
				return nil, fmt.Errorf("topic fetch for %q: %w", topic, err)
			}
			// NotFound, backend and protocol failures degrade to an
			// empty contribution for this query.
			f.logger.Warn("topic query failed, skipping", "query", query, "error", err)
			continue
		}
		for _, item := range items {
			if item.ID == "" || seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			merged = append(merged, item)
		}
	}

	requirements := filterByTopic(merged, topic)
	f.logger.Info("topic fetch complete",
		"project", projectID, "topic", topic,
		"merged", len(merged), "kept", len(requirements))

	return &RequirementSet{
		Topic:        topic,
		ProjectID:    projectID,
		Requirements: requirements,
		FetchedAt:    time.Now().UTC(),
	}, nil
}

// filterByTopic keeps work items that are requirement-typed or mention
// the topic (case-insensitive) in their title or description.
func filterByTopic(items []polarion.WorkItem, topic string) []polarion.WorkItem {
	needle := strings.ToLower(topic)
	kept := make([]polarion.WorkItem, 0, len(items))
	for _, item := range items {
		if isRequirementType(item.Type) {
			kept = append(kept, item)
			continue
		}
		text := strings.ToLower(item.Title + " " + item.Description)
		if needle != "" && strings.Contains(text, needle) {
			kept = append(kept, item)
		}
	}
	return kept
}

func isRequirementType(typeTag string) bool {
	return strings.Contains(strings.ToLower(typeTag), "requirement")
}
