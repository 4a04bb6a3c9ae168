package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives a gravatar image URL from an email address.
// Size 200, "mm" default image, pg rating.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&d=mm&r=pg", hash)
}
