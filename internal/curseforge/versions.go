// SPDX-License-Identifier: MPL-2.0

package curseforge

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

type (
	// GameVersion is one row of the remote version catalog.
	GameVersion struct {
		Name string `json:"name"` // Human-readable label, e.g. "1.20.1"
		Slug string `json:"slug"` // URL-safe label, e.g. "1-20-1"
		ID   int    `json:"id"`   // API-internal numeric identifier
	}

	// UnresolvedVersionsError is returned when one or more version labels
	// match no catalog entry. It carries every unmatched label, not just
	// the first, so the user can fix them all in one pass.
	UnresolvedVersionsError struct {
		Labels []string
	}
)

// Error formats the full list of unmatched labels.
func (e *UnresolvedVersionsError) Error() string {
	return fmt.Sprintf("unable to map game version(s): %s", strings.Join(e.Labels, ", "))
}

// ResolveVersions maps user-supplied version labels to catalog IDs, one per
// label, preserving input order.
//
// For each label the catalog is scanned in its given order and the first
// entry whose Name or Slug equals the label wins; the scan for that label
// then stops. Note this means a slug match early in the catalog shadows a
// name match further down — name matches take priority only within a single
// entry, not across the catalog. Callers that care which field matched can
// watch the logger's debug output.
//
// If any label matches nothing, resolution fails as a whole with an
// UnresolvedVersionsError listing every miss; no partial result is returned.
func ResolveVersions(catalog []GameVersion, labels []string, logger *log.Logger) ([]int, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	logger.Info("mapping game versions", "labels", labels)

	ids := make([]int, 0, len(labels))
	var unresolved []string

	for _, label := range labels {
		matched := false
		for _, v := range catalog {
			if v.Name == label {
				logger.Debug("mapped game version via name", "label", label, "id", v.ID)
				ids = append(ids, v.ID)
				matched = true
				break
			}
			if v.Slug == label {
				logger.Debug("mapped game version via slug", "label", label, "id", v.ID)
				ids = append(ids, v.ID)
				matched = true
				break
			}
		}
		if !matched {
			logger.Error("unable to map game version", "label", label)
			unresolved = append(unresolved, label)
		}
	}

	if len(unresolved) > 0 {
		return nil, &UnresolvedVersionsError{Labels: unresolved}
	}

	logger.Info("mapped game versions", "ids", ids)
	return ids, nil
}
