// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent damage-preview computations. Previews are pure reads over the
// battle state, so concurrent requests for the same battle/card pair can
// share one computation while the other callers wait for the result.
package dedupe

import "golang.org/x/sync/singleflight"

// PreviewGroup deduplicates damage-preview requests keyed by
// "<battle_code>:<card_index>".
var PreviewGroup singleflight.Group
