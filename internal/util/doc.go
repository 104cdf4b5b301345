// Package util provides common utility functions used across the go-pinterest module.
//
// Key utilities:
//   - SafeTruncate: Safely truncates strings for logging sensitive data
//   - EnsureTrailingSlash: Normalizes API base URLs
//   - SplitList: Splits scope lists given on the command line or in config files
package util
