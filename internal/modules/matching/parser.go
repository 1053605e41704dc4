// README: Tagged-section parser for the model's free-form response.
package matching

import (
	"regexp"
	"strings"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// The model is instructed to answer with three tagged sections, but it does
// not always comply. The layered fallbacks below recover what they can;
// Parse never fails, and in the worst case only the comment is populated
// with the raw input.

var (
	// tripIDTagRe recovers an id when the model emitted the [TRIP_ID] tag
	// after [MESSAGE] instead of before it.
	tripIDTagRe = regexp.MustCompile(`\[TRIP_ID\]\s*([A-Z0-9-]+)`)
	// idShapeRe is what the primary split path accepts as an id: the same
	// uppercase charset tripIDTagRe captures. A lowercase "none" fails it
	// and leaves the id nil for the later fallbacks.
	idShapeRe = regexp.MustCompile(`^[A-Z0-9-]+$`)
	// bareTripIDRe is the last resort: the model sometimes mentions the id
	// inline in the comment without any tag. Case-insensitive on purpose,
	// unlike the NONE guard above it; see the note on keepNoneMismatch.
	bareTripIDRe = regexp.MustCompile(`(?i)TRIP-[A-Z0-9]+`)
)

// keepNoneMismatch: the primary NONE check is case-sensitive while the bare
// fallback regex is case-insensitive, so a lowercase "none" in [TRIP_ID] can
// still be overridden by a coincidental TRIP-XXXX elsewhere in the text.
// Product intent for lowercase model output is unspecified; the layered
// behavior is kept as is.

// Parse splits a raw model response into comment, chosen trip id and
// customer message.
func Parse(raw string) Recommendation {
	rec := Recommendation{}

	// 1. Message split: everything right of the first [MESSAGE] marker is
	// the customer message; absent marker means no message at all.
	region := raw
	if strings.Contains(raw, markerMessage) {
		parts := strings.SplitN(raw, markerMessage, 2)
		region = parts[0]
		msg := strings.TrimSpace(parts[1])
		rec.CustomerMessage = &msg
	}

	// 2. Trip id split within the comment+tripid region.
	switch {
	case strings.Contains(region, markerTripID):
		parts := strings.SplitN(region, markerTripID, 2)
		rec.InternalComment = stripCommentLabel(parts[0])
		candidate := firstLine(parts[1])
		if candidate != noMatchToken && idShapeRe.MatchString(candidate) {
			id := types.ID(candidate)
			rec.ChosenTripID = &id
		}
	case strings.Contains(raw, markerTripID):
		// The tag exists but landed after [MESSAGE]; recover from the raw
		// string, not the split region.
		rec.InternalComment = stripCommentLabel(region)
		if m := tripIDTagRe.FindStringSubmatch(raw); m != nil && m[1] != noMatchToken {
			id := types.ID(m[1])
			rec.ChosenTripID = &id
		}
	default:
		rec.InternalComment = stripCommentLabel(region)
	}

	// 3. Last resort: a bare TRIP-XXXX mentioned inside the comment.
	if rec.ChosenTripID == nil {
		if m := bareTripIDRe.FindString(rec.InternalComment); m != "" {
			id := types.ID(strings.ToUpper(m))
			rec.ChosenTripID = &id
		}
	}

	return rec
}

// stripCommentLabel removes a leading [COMMENTAIRE] label and trims
// whitespace; the callers' "analysis pending" placeholder is a display-layer
// default, so an empty comment stays empty here.
func stripCommentLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, markerComment)
	return strings.TrimSpace(s)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
