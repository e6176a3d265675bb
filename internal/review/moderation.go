package review

import (
	"errors"
	"fmt"

	"github.com/product-reviews/product-reviews/internal/db/models"
)

// ErrInvalidStatus is returned for a status outside PENDING, PUBLISHED, HIDDEN.
var ErrInvalidStatus = errors.New("invalid review status")

// Action names a moderation step, used for logging and metrics.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionRetract Action = "retract"
	ActionRestore Action = "restore"
	ActionHold    Action = "hold"
	ActionNone    Action = "none"
)

// InitialStatus is the status a new review starts with. Storefront
// submissions wait for moderation, reviews written by the merchant are
// published right away.
func InitialStatus(adminAuthored bool) models.ReviewStatus {
	if adminAuthored {
		return models.StatusPublished
	}

	return models.StatusPending
}

// Transition validates a status change and names it.
// Every status may move to every other status; moving to the current
// status is allowed and reported as ActionNone.
func Transition(from, to models.ReviewStatus) (Action, error) {
	if !to.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	if !from.Valid() {
		return "", fmt.Errorf("%w: current status %q", ErrInvalidStatus, from)
	}

	switch {
	case from == to:
		return ActionNone, nil
	case to == models.StatusPending:
		return ActionHold, nil
	case from == models.StatusPending && to == models.StatusPublished:
		return ActionApprove, nil
	case from == models.StatusPending && to == models.StatusHidden:
		return ActionReject, nil
	case from == models.StatusPublished:
		return ActionRetract, nil
	default:
		return ActionRestore, nil
	}
}

// Visible reports whether the storefront may show the review.
func Visible(r *models.Review) bool {
	return r.Status == models.StatusPublished
}
