package lockout

import (
	"github.com/PancyStudios/PancyJailGo/pkg/models"
)

// AccrualStatus is the outcome of advancing a jail record's countdown.
type AccrualStatus int

const (
	// StatusPaused means the record has no watermark (inmate absent),
	// nothing was accrued.
	StatusPaused AccrualStatus = iota
	// StatusCounting means time was folded in and the sentence continues.
	StatusCounting
	// StatusReleased means the countdown just reached zero. The caller is
	// responsible for the release side effects (role restore, deletion,
	// notification); the record itself only transitions here once.
	StatusReleased
)

// Accrue folds the wall-clock time elapsed since the record's watermark into
// RemainingSeconds and advances the watermark to now.
//
// The delta is always "elapsed since last sample", never "elapsed since the
// session started": whichever writer runs first (periodic sweep or voice
// event) consumes the interval and moves the watermark, so the other writer
// sees a near-zero delta instead of counting the same seconds twice.
func Accrue(rec *models.JailRecord, now float64) AccrualStatus {
	if rec.LastCheck == nil {
		return StatusPaused
	}

	delta := now - *rec.LastCheck
	if delta < 0 {
		// Clock went backwards between samples; do not credit time back.
		delta = 0
	}

	rec.RemainingSeconds -= delta
	if rec.RemainingSeconds < 0 {
		rec.RemainingSeconds = 0
	}

	ts := now
	rec.LastCheck = &ts

	if rec.RemainingSeconds == 0 {
		return StatusReleased
	}
	return StatusCounting
}

// OnPresenceEnter starts accrual when the inmate enters the jail channel.
// Idempotent: a duplicate enter while already counting leaves the existing
// watermark alone, so the interval since the last sample still belongs to
// whichever writer folds it in next.
func OnPresenceEnter(rec *models.JailRecord, now float64) {
	if rec.LastCheck == nil {
		ts := now
		rec.LastCheck = &ts
	}
}

// OnPresenceExit performs one final accrual for the interval between the last
// sample and the moment the inmate left, then clears the watermark so no time
// accrues while they are away. Returns the accrual outcome so the caller can
// release on the spot if the sentence just completed.
func OnPresenceExit(rec *models.JailRecord, now float64) AccrualStatus {
	if rec.LastCheck == nil {
		return StatusPaused
	}
	status := Accrue(rec, now)
	rec.LastCheck = nil
	return status
}
