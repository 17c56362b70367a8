package booking

import (
	"fmt"
	"strconv"
	"strings"
)

const referencePrefix = "BK"

// Reference returns the presentable booking reference for a persisted id.
func Reference(id int64) string {
	return fmt.Sprintf("%s%06d", referencePrefix, id)
}

// ParseReference is the inverse of Reference.
func ParseReference(ref string) (int64, bool) {
	digits, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(ref)), referencePrefix)
	if !ok || len(digits) < 6 {
		return 0, false
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
