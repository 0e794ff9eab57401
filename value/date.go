package value

import (
	"strconv"
	"strings"
	"time"
)

// DatePrefix starts a string that carries a date as epoch seconds.
const DatePrefix = "$D_"

// Date returns the date string for t, truncated to whole seconds.
func Date(t time.Time) String {
	return String(DatePrefix + strconv.FormatInt(t.Unix(), 10))
}

// Date parses s as a date string.
func (s String) Date() (time.Time, bool) {
	rest, ok := strings.CutPrefix(string(s), DatePrefix)
	if !ok {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
