// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into guidance. ActionableError attaches the
// attempted operation, the resource involved, and remediation suggestions to
// an error; the Issue catalog pairs well-known failure modes (unresolved
// versions, conflicting targets, missing files) with rendered Markdown help.
package issue
