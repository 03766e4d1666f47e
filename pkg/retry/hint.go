package retry

import (
	"errors"

	"github.com/jzx17/airetry/pkg/types"
)

// retryAfterKeys are checked in this order by every lookup strategy
var retryAfterKeys = []string{"retry-after", "Retry-After", "retry-after-ms", "Retry-After-Ms"}

// RetryAfter extracts the raw retry-after hint from err, or "" when there is
// none. Strategies are tried in a fixed order, since the winner decides the
// retry timing:
//
//  1. headers exposed through a getter (types.HeaderProvider)
//  2. headers of a nested HTTP response (types.ResponseProvider)
//  3. a flat header map (types.HeaderMapProvider)
//
// Within a strategy the first non-empty key wins.
func RetryAfter(err error) string {
	if err == nil {
		return ""
	}

	var hp types.HeaderProvider
	if errors.As(err, &hp) {
		if h := hp.Header(); h != nil {
			if v := firstValue(h.Get); v != "" {
				return v
			}
		}
	}

	var rp types.ResponseProvider
	if errors.As(err, &rp) {
		if resp := rp.HTTPResponse(); resp != nil && resp.Header != nil {
			if v := firstValue(resp.Header.Get); v != "" {
				return v
			}
		}
	}

	var mp types.HeaderMapProvider
	if errors.As(err, &mp) {
		if m := mp.HeaderMap(); m != nil {
			if v := firstValue(func(k string) string { return m[k] }); v != "" {
				return v
			}
		}
	}

	return ""
}

func firstValue(get func(string) string) string {
	for _, key := range retryAfterKeys {
		if v := get(key); v != "" {
			return v
		}
	}
	return ""
}
