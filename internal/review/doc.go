// Package review holds the review business rules that do not touch storage:
// moderation transitions and the statistics shown by the admin dashboard
// and the storefront widget.
//
// All functions in this package are pure. They never modify the slices they
// are given and return the same result for the same input.
package review
