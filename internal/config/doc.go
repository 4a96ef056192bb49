// Package config holds the run configuration: where the source tree lives,
// which feature-table file and entry shapes the promotion works on, and how
// the UI test sweep runs.
//
// Configuration comes from three places, later ones winning:
//
//  1. Default(), which matches the layout of a rustc source tree.
//  2. A TOML file read by Load. Keys present in the file override the
//     defaults; a missing file is not an error. Unknown keys are rejected.
//  3. STABILIZE_* environment variables applied by ApplyEnv.
//
// String fields may contain the {feature} placeholder, substituted by
// Expand once the feature name is known.
package config
