package feed

import (
	"fmt"
	"math"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7
	month = 30
)

// Age labels how long ago t was, counting started days.
func Age(now, t time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = -d
	}

	days := int(math.Ceil(float64(d) / float64(day)))

	switch {
	case days == 1:
		return "1 day ago"
	case days < week:
		return fmt.Sprintf("%d days ago", days)
	case days < month:
		return fmt.Sprintf("%d weeks ago", int(math.Ceil(float64(days)/week)))
	default:
		return fmt.Sprintf("%d months ago", int(math.Ceil(float64(days)/month)))
	}
}
