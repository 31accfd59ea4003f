// Package dataprep prepares raw CSV datasets for analysis and model
// training: missing-value repair, feature standardization, per-group
// demeaning, reproducible train/test splitting and calendar windowing.
package dataprep
